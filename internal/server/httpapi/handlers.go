package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/translingo/internal/server/auth"
	"github.com/dmitrijs2005/translingo/internal/server/models"
	"github.com/dmitrijs2005/translingo/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type preferencesRequest struct {
	DefaultFromLang string `json:"defaultFromLang"`
	DefaultToLang   string `json:"defaultToLang"`
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

type listResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type loginData struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// fail logs unexpected errors and writes the mapped response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, msg := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), fallback, "error", err, "path", r.URL.Path)
	}
	writeError(w, status, msg)
}

// authenticate resolves the bearer token into claims. It writes the error
// response itself and returns nil on failure.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) *auth.Claims {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, msgTokenRequired)
		return nil
	}
	claims, err := s.users.ValidateSession(r.Context(), token)
	if err != nil {
		s.fail(w, r, err, "Invalid token")
		return nil
	}
	return claims
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := s.users.Register(r.Context(), req.Email, req.Password); err != nil {
		s.fail(w, r, err, "Failed to register")
		return
	}
	writeJSON(w, http.StatusCreated, successResponse{Success: true})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err, "Failed to login")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data:    loginData{User: res.User.Public(), Token: res.Token},
	})
}

func (s *Server) validateSession(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, User: claims})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, msgTokenRequired)
		return
	}
	if err := s.users.Logout(r.Context(), token); err != nil {
		s.fail(w, r, err, "Failed to logout")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) preferences(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}
	var req preferencesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.users.UpdatePreferences(r.Context(), claims.UserID, req.DefaultFromLang, req.DefaultToLang); err != nil {
		s.fail(w, r, err, "Failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// translate accepts guests; a token, when sent, must be valid.
func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	if bearerToken(r) != "" && s.authenticate(w, r) == nil {
		return
	}
	var req translateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SourceLang == "" {
		req.SourceLang = services.SourceAuto
	}
	res, err := s.translator.Translate(r.Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		s.fail(w, r, err, "Failed to translate")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// languages lists the supported languages matching ?query=. The parameter
// must be present but may be empty.
func (s *Server) languages(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("query") {
		s.fail(w, r, services.ErrQueryRequired, "Failed to search languages")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: services.SearchLanguages(r.URL.Query().Get("query"))})
}

func (s *Server) saveTranslation(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}
	var req services.HistoryEntry
	if !decodeBody(w, r, &req) {
		return
	}
	saved, err := s.history.Save(r.Context(), claims.UserID, models.TranslationKind(chi.URLParam(r, "kind")), req)
	if err != nil {
		s.fail(w, r, err, "Failed to save translation")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: saved})
}

func (s *Server) listTranslations(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}
	list, err := s.history.List(r.Context(), claims.UserID, models.TranslationKind(chi.URLParam(r, "kind")))
	if err != nil {
		s.fail(w, r, err, "Failed to fetch translations")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: list})
}

func (s *Server) deleteTranslation(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}
	if err := s.history.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err, "Failed to delete translation")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) clearTranslations(w http.ResponseWriter, r *http.Request) {
	claims := s.authenticate(w, r)
	if claims == nil {
		return
	}
	n, err := s.history.Clear(r.Context(), claims.UserID)
	if err != nil {
		s.fail(w, r, err, "Failed to clear translations")
		return
	}
	s.logger.Debug(r.Context(), "history cleared", "user_id", claims.UserID, "removed", n)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
