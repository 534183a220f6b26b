package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/translingo/internal/common"
	"github.com/dmitrijs2005/translingo/internal/server/services"
)

const maxBodyBytes = 1 << 20

const (
	msgTokenRequired = "Token required"
	msgInvalidBody   = "Invalid request body"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	User    any  `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// statusFor maps a service error to the HTTP status and client-facing
// message. Unrecognised errors become 500 with fallback.
func statusFor(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, services.ErrCredentialsRequired):
		return http.StatusBadRequest, "Email and password are required"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, services.ErrLanguagesRequired):
		return http.StatusBadRequest, "Both languages are required"
	case errors.Is(err, services.ErrTextRequired):
		return http.StatusBadRequest, "Text and targetLang are required"
	case errors.Is(err, services.ErrEntryRequired):
		return http.StatusBadRequest, "Languages and both texts are required"
	case errors.Is(err, services.ErrQueryRequired):
		return http.StatusBadRequest, "Query parameter is required"
	case errors.Is(err, services.ErrUnknownKind):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrTranslationNotFound):
		return http.StatusNotFound, "Translation not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, fallback
	case errors.Is(err, services.ErrInvalidSession):
		return http.StatusForbidden, "Invalid session"
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrInvalidToken):
		return http.StatusForbidden, "Invalid token"
	case errors.Is(err, services.ErrTranslatorUnavailable):
		return http.StatusServiceUnavailable, "Translation is unavailable"
	default:
		return http.StatusInternalServerError, fallback
	}
}
