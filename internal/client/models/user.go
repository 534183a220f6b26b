// Package models defines the client-side data model: the cached user record,
// language preferences, the in-memory session and the translation modalities
// guests are metered on.
package models

// LanguageCode is a base language code such as "en" or "he".
type LanguageCode string

// User is the account record returned by the login endpoint and cached under
// the "user" key. The language fields are the defaults declared on the
// account and may be empty.
type User struct {
	ID              string       `json:"id"`
	Email           string       `json:"email"`
	DefaultFromLang LanguageCode `json:"defaultFromLang,omitempty"`
	DefaultToLang   LanguageCode `json:"defaultToLang,omitempty"`
}

// Valid reports whether the record identifies a user. A cached record
// without an id is treated as absent.
func (u *User) Valid() bool {
	return u != nil && u.ID != ""
}

// Preferences are the default translation direction. They exist for guests
// as well as for signed-in users.
type Preferences struct {
	DefaultFromLang LanguageCode `json:"defaultFromLang"`
	DefaultToLang   LanguageCode `json:"defaultToLang"`
}

// Complete reports whether both directions are set.
func (p Preferences) Complete() bool {
	return p.DefaultFromLang != "" && p.DefaultToLang != ""
}

// IsZero reports whether neither direction is set.
func (p Preferences) IsZero() bool {
	return p.DefaultFromLang == "" && p.DefaultToLang == ""
}
