package services

import (
	"errors"
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	UserID    string          `json:"sub"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	SessionID string          `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateSessionToken mints the bearer token for a freshly created session.
// The session id travels inside the token so that verification can require a
// live session row, which is what makes server-side revocation work.
func GenerateSessionToken(secret string, user *models.User, sessionID uuid.UUID, now time.Time, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the claims.
// Every failure mode collapses into ErrInvalidToken; callers get no detail
// beyond "invalid".
func ParseSessionToken(secret, tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == "" || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
