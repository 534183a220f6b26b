package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/translingo/internal/common"
)

var (
	ErrCredentialsRequired = fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)
	ErrLanguagesRequired   = fmt.Errorf("%w: both languages are required", common.ErrorValidation)
	ErrTextRequired        = fmt.Errorf("%w: text and targetLang are required", common.ErrorValidation)
	ErrEntryRequired       = fmt.Errorf("%w: languages, original_text and translated_text are required", common.ErrorValidation)
	ErrQueryRequired       = fmt.Errorf("%w: query parameter is required", common.ErrorValidation)
	ErrUnknownKind         = fmt.Errorf("%w: unknown translation type", common.ErrorValidation)

	// ErrTranslationNotFound covers both missing entries and entries owned
	// by someone else.
	ErrTranslationNotFound = fmt.Errorf("translation %w", common.ErrorNotFound)

	// ErrInvalidSession is returned for a well-signed token whose session
	// row is gone or expired.
	ErrInvalidSession = fmt.Errorf("%w: session not found", common.ErrInvalidToken)

	ErrTranslatorUnavailable = errors.New("translator unavailable")
)
