// Package client contains the client-side transport and local database
// bootstrap for Translingo.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) with the
//     remote session store: Register, Login, Logout, ValidateSession,
//     UpdatePreferences, and the Translate call.
//  2. A JSON/HTTP implementation (see HTTPClient) built on a pooled
//     go-cleanhttp client. Authenticated calls carry the signed session id
//     as a bearer token.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite cache file and applies the embedded goose migrations.
//
// # Error Handling
//
// Failures are classified so callers can match them with errors.Is:
//   - ErrUnavailable: the request never produced an HTTP response
//     (connection refused, timeout) or the server answered 502/503/504.
//   - ErrUnauthorized: 401/403 on a call that carried a token.
//   - ErrRejected: any structured rejection. The concrete *ServerError
//     carries the status and the server's message.
//
// Context cancellation is returned as the context's own error.
package client
