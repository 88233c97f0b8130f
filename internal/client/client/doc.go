// Package client contains client-side building blocks for bookswap.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the full bookswap backend surface: Register/Login, profile operations,
//     public user lookup, and book CRUD plus the like toggle.
//  2. A concrete HTTP implementation (see HTTPClient) that injects the bearer
//     credential via a RoundTripper, bounds every call with a fixed timeout,
//     and normalizes every outcome, success or failure, into one shape.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns *Error carrying a message, a machine-readable
// code, and the HTTP status. Three classes are distinguishable: the server
// responded with a non-2xx status (Status > 0), the request was sent but no
// response arrived (CodeNetwork, Status 0), or the request could not be
// dispatched at all (CodeRequestFailed, Status 0). Downstream code never sees
// transport-specific error types.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
