// Package auth issues and verifies session tokens and signs users in with
// Google.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "homebudget-api"

// ErrInvalidSession is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidSession = errors.New("invalid or expired session")

// User is an authenticated household member.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionClaims are the claims carried by a session token. The subject is
// the user id.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies HS256 session tokens.
type Sessions struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSessions creates a Sessions signing with secret. Tokens live for ttl.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{key: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue signs a session token for user.
func (s *Sessions) Issue(user User) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Parse verifies token and returns the user it was issued for.
func (s *Sessions) Parse(token string) (*User, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	return &User{ID: claims.Subject, Email: claims.Email}, nil
}
