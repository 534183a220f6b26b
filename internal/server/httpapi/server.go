// Package httpapi exposes the session endpoints, /translate, the per-user
// translation history and the language list over JSON/HTTP using a chi
// router.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/translingo/internal/logging"
	"github.com/dmitrijs2005/translingo/internal/server/auth"
	"github.com/dmitrijs2005/translingo/internal/server/models"
	"github.com/dmitrijs2005/translingo/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Users is the account and session logic the handlers call into.
type Users interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	ValidateSession(ctx context.Context, token string) (*auth.Claims, error)
	Logout(ctx context.Context, token string) error
	UpdatePreferences(ctx context.Context, userID, fromLang, toLang string) error
}

// Translator translates text, detecting the source when it is "auto".
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (*services.Translation, error)
}

// History is the per-user translation history.
type History interface {
	Save(ctx context.Context, userID string, kind models.TranslationKind, e services.HistoryEntry) (*models.Translation, error)
	List(ctx context.Context, userID string, kind models.TranslationKind) ([]models.Translation, error)
	Delete(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) (int64, error)
}

type Server struct {
	address         string
	users           Users
	translator      Translator
	history         History
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewServer(addr string, l logging.Logger, us Users, tr Translator, h History, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         addr,
		logger:          l.With("module", "http_server"),
		users:           us,
		translator:      tr,
		history:         h,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the router with all routes and middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/register", s.register)
	r.Post("/login", s.login)
	r.Get("/validate-session", s.validateSession)
	r.Post("/logout", s.logout)
	r.Post("/preferences", s.preferences)
	r.Post("/translate", s.translate)
	r.Get("/languages", s.languages)

	r.Route("/translations", func(r chi.Router) {
		r.Delete("/", s.clearTranslations)
		r.Post("/{kind}", s.saveTranslation)
		r.Get("/{kind}", s.listTranslations)
		r.Delete("/delete/{id}", s.deleteTranslation)
		r.Post("/delete/{id}", s.deleteTranslation)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listen) }()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
