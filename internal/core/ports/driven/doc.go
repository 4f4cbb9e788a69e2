// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for a rewrite run:
//
//   - Fetcher: Retrieves raw spec sources over HTTP
//   - BlockExtractor: Finds Web IDL blocks in a document
//   - GrammarEngine: Parses, validates, corrects and serializes Web IDL
//   - SourceCatalog: Lists the specs to process
//   - ReportStore: Persists rewritten text, patches and reports
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are only needed by submit runs:
//
//   - CodeHost: Forks, branches, pull requests and issues (GitHub)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
