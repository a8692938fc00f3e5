// Package security holds the credential codec and password hashing primitives.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned internally when a token is malformed or invalid.
var ErrInvalidToken = errors.New("invalid token")

// IdentityClaims is the payload of a signed identity token. Immutable once
// issued; it is invalidated only by expiry. IsAdmin mirrors the user's admin
// flag at issuance time and is not re-checked against the store until the
// token expires and is reissued (accepted staleness window).
type IdentityClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"isAdmin"`
}

// TokenProvider issues and verifies HS256 identity tokens with a fixed lifetime.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret. ttl <= 0
// falls back to 7 days.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &TokenProvider{secret: []byte(secret), ttl: ttl}
}

// Issue signs an identity token for the given subject. isAdmin is baked into
// the claims; see IdentityClaims.
func (p *TokenProvider) Issue(subjectID string, isAdmin bool) (string, error) {
	now := time.Now().UTC()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		IsAdmin: isAdmin,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}

// Verify parses and validates token (signature, expiry). Returns nil on any
// failure; callers treat nil as "unauthenticated" and must never see an error.
func (p *TokenProvider) Verify(tokenString string) *IdentityClaims {
	if tokenString == "" {
		return nil
	}
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil
	}
	return claims
}
