// Package auth issues and verifies the signed session ids handed to clients.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/translingo/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user identity embedded in a signed session id. The
// client compares ID against its cached user, so the JSON names matter.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// tokenIDBytes is the entropy of the jti claim. Two logins in the same
// second must still yield distinct tokens, since tokens key the sessions table.
const tokenIDBytes = 16

// GenerateToken signs an HS256 token for the user that expires after validity.
func GenerateToken(userID, email string, secretKey []byte, validity time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(tokenIDBytes)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
