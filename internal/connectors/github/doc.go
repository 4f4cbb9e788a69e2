// Package github implements driven.CodeHost on the GitHub REST API.
//
// Submit runs use it to propose rewritten spec sources upstream: the
// authenticated account forks the spec repository, keeps a branch named
// after the spec in sync with the upstream default branch, commits the
// rewritten file and opens a pull request. Specs whose Web IDL does not
// parse get an issue instead, which is closed once the syntax is fixed.
//
// # Architecture
//
//   - Client: wraps go-github with authentication, rate limiting and error mapping
//   - Host: the driven.CodeHost implementation built on Client
//   - RateLimiter: proactive and reactive throttling
//
// # Authentication
//
// A personal access token with the public_repo scope is required. It is
// read from the github.token setting or the GH_TOKEN environment variable
// and sent through an oauth2 static token source.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits requests to approximately
//     1.2 requests per second.
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When the remaining quota drops below a
//     buffer, it waits until the reset time before continuing.
//
// # Errors
//
// API failures are returned as *APIError, which matches domain.ErrNotFound
// for 404 responses, and *RateLimitError when the quota is exhausted.
package github
