package models

// Session binds an authenticated user to the signed session id that
// authorizes their requests. A Session is either complete or absent:
// NewSession refuses to build one from a partial pair.
type Session struct {
	User            User
	SignedSessionID string
	Preferences     Preferences
}

// NewSession returns nil unless both the user and the token are present.
func NewSession(user *User, signedSessionID string, prefs Preferences) *Session {
	if !user.Valid() || signedSessionID == "" {
		return nil
	}
	return &Session{User: *user, SignedSessionID: signedSessionID, Preferences: prefs}
}

// Clone returns an independent copy, nil-safe.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Status is the position of the session lifecycle state machine.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusGuest         Status = "guest"
)

// Terminal reports whether initialization has resolved.
func (s Status) Terminal() bool {
	return s == StatusAuthenticated || s == StatusGuest
}

// Route names a screen the presentation layer can navigate to.
type Route string

const (
	RouteNone     Route = ""
	RouteWelcome  Route = "/welcome"
	RouteMain     Route = "/(drawer)/(tabs)"
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
)

// Navigation is a transition requested by an operation. The caller executes
// it once the manager has settled (no load or auth operation in flight).
type Navigation struct {
	Route Route
}

// Pending reports whether a route was requested.
func (n Navigation) Pending() bool {
	return n.Route != RouteNone
}
