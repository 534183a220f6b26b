// Package cli provides the interactive Translingo command-line client.
//
// It wires configuration, the local cache, the API client and the session
// services into a REPL. Start-up reconciliation runs in the background
// while the prompt is already usable as a guest.
//
// Key features:
//   - Register / Login / Logout
//   - Show and change default translation languages
//   - Translate text, metered for guests
//   - Status of the current session and the guest quota
//
// Navigation requested by an operation (for example the main screen after
// a login) is held until the session manager has settled, then applied.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
