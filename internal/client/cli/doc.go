// Package cli provides the interactive bookswap command-line client.
//
// It wires configuration, local credential storage, the API gateway, and an
// interactive REPL over the session and collection services. Typical flow:
// resolve the persisted session, then execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Browse the shared collection with search and genre filtering
//   - Like listings (optimistic, rolls nothing back on failure)
//   - Manage own listings: add, list, update, delete
//   - Profile view/update and account deletion
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
