// Package services contains server-side business logic. This file implements
// UserService: registration, login, session validation, logout and the
// account's language preferences.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/translingo/internal/common"
	"github.com/dmitrijs2005/translingo/internal/dbx"
	"github.com/dmitrijs2005/translingo/internal/server/auth"
	"github.com/dmitrijs2005/translingo/internal/server/config"
	"github.com/dmitrijs2005/translingo/internal/server/models"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User  *models.User
	Token string
}

// UserService owns accounts and the sessions issued for them.
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	sessionValidity time.Duration
	bcryptCost      int
	now             func() time.Time
}

// NewUserService constructs a UserService. db may be nil for the memory
// backend.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidity,
		bcryptCost:      bcrypt.DefaultCost,
		now:             time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a bcrypt-hashed password.
// A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and issues a signed session id. The session
// row is written in the same transaction that purges expired ones.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	now := s.now()
	session := &models.Session{UserID: user.ID, Token: token, ExpiresAt: now.Add(s.sessionValidity)}

	err = s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)
		if _, err := repo.DeleteExpired(ctx, now); err != nil {
			return fmt.Errorf("error purging sessions: %w", err)
		}
		if err := repo.Create(ctx, session); err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// ValidateSession checks the token signature, that its session is still on
// record and that the account behind it still exists.
func (s *UserService) ValidateSession(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	session, err := s.repomanager.Sessions(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if session.Expired(s.now()) || session.UserID != claims.UserID {
		return nil, ErrInvalidSession
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return claims, nil
}

// Logout forgets the session. Unknown tokens are not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// UpdatePreferences stores the account's default translation direction.
func (s *UserService) UpdatePreferences(ctx context.Context, userID, fromLang, toLang string) error {
	fromLang, toLang = strings.TrimSpace(fromLang), strings.TrimSpace(toLang)
	if fromLang == "" || toLang == "" {
		return ErrLanguagesRequired
	}

	if err := s.repomanager.Users(s.db).UpdatePreferences(ctx, userID, fromLang, toLang); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrInvalidSession
		}
		return fmt.Errorf("error updating preferences: %w", err)
	}
	return nil
}
