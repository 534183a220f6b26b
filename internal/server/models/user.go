// Package models holds the server-side records persisted by the repositories.
package models

import "time"

// User is an account. PasswordHash is a bcrypt hash and never leaves the
// server; Public strips it for responses.
type User struct {
	ID              string
	Email           string
	PasswordHash    []byte
	DefaultFromLang string
	DefaultToLang   string
	CreatedAt       time.Time
}

// PublicUser is the account view returned to clients.
type PublicUser struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	DefaultFromLang string `json:"defaultFromLang,omitempty"`
	DefaultToLang   string `json:"defaultToLang,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		DefaultFromLang: u.DefaultFromLang,
		DefaultToLang:   u.DefaultToLang,
	}
}
