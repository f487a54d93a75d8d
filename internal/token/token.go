// Package token mints and validates the bearer tokens issued at login.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, expired,
// malformed. Callers must not learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = time.Hour

// Claims carried by a session token. Only non-sensitive identifiers; the
// credential hash is never embedded.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Issuer signs and verifies tokens with a symmetric secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// WithTimeFunc returns a copy of the issuer that reads the clock from now.
// Used by tests to simulate expiry.
func (i *Issuer) WithTimeFunc(now func() time.Time) *Issuer {
	c := *i
	c.now = now
	return &c
}

// Issue signs a token for the given account, expiring after the issuer TTL.
func (i *Issuer) Issue(userID int64, username string) (string, error) {
	now := i.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID:   userID,
		Username: username,
	})
	return t.SignedString(i.secret)
}

// Verify checks signature and expiry. Tampered and expired tokens fail
// identically with ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
