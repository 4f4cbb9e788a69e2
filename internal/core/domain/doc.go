// Package domain defines the core entities of webidl-updater.
//
// This package is the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SpecSource: a catalog entry pointing at a spec's raw source
//   - Document: the immutable text of one fetched spec source
//   - Block: one Web IDL fragment embedded in a Document
//   - Report: the persisted per-document outcome of a rewrite run
//   - Settings: user configuration for rewrite and submit runs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
