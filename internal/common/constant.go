// Package common contains shared constants and sentinel errors used across
// Translingo components.
package common

const (
	// AuthorizationHeaderName carries the signed session id on authenticated
	// requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the signed session id in AuthorizationHeaderName.
	BearerScheme = "Bearer"
)
