package services

import (
	"errors"

	"github.com/dmitrijs2005/translingo/internal/client/client"
)

var (
	ErrGuestLimitReached  = errors.New("guest limit reached")
	ErrInvalidPreferences = errors.New("both languages must be set")
	ErrUnknownModality    = errors.New("unknown modality")
	ErrDisposed           = errors.New("session manager disposed")
	ErrEmptyText          = errors.New("nothing to translate")
	// ErrSessionBusy means start-up validation or an identity change is
	// still running, so the actor is not known yet.
	ErrSessionBusy = errors.New("session is still loading")
	ErrNotSignedIn = errors.New("not signed in")

	errIncompleteLogin = errors.New("login response is missing the user or the token")
)

// OperationError is returned by the identity-changing operations. Error()
// is the text to show the user; Unwrap exposes the cause.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string { return e.Message }

func (e *OperationError) Unwrap() error { return e.Err }

// newOperationError prefers the server's own message over fallback.
func newOperationError(op, fallback string, err error) *OperationError {
	msg := client.Message(err)
	if msg == "" {
		msg = fallback
	}
	return &OperationError{Op: op, Message: msg, Err: err}
}
