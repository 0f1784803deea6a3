package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bimatch/internal/model"
)

// ErrInvalidToken means the session token is malformed, forged or
// expired.
var ErrInvalidToken = errors.New("invalid or expired session token")

// tokenTTL matches the session cache TTL: a token outliving its
// session is useless anyway.
const tokenTTL = 30 * time.Minute

// TokenService signs and validates session tokens. The token is the
// reference handed out at contact submission that later authorizes the
// result attachment for the same session; it is not user
// authentication.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing
// secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue creates a signed token binding a session ID to the email the
// contact record was created under.
func (s *TokenService) Issue(sessionID, email string) (string, error) {
	claims := &model.SessionClaims{
		SessionID: sessionID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a session token and returns its claims.
func (s *TokenService) Validate(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
