// Package auth issues and verifies the bearer tokens that identify the principal
// (the course teacher's username) behind each API call.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is used when an Issuer is created without a lifetime.
const DefaultTTL = 24 * time.Hour

// ErrEmptyPrincipal is returned when a token would carry no subject.
var ErrEmptyPrincipal = errors.New("principal is required")

// ErrInvalidToken is returned by Parse for malformed, expired or foreign tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer signs and verifies HS256 tokens whose subject is the principal.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A non-positive ttl selects DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken creates a signed JWT for principal.
func (i *Issuer) IssueToken(principal string) (string, error) {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return "", ErrEmptyPrincipal
	}
	now := i.now()
	claims := jwt.MapClaims{
		"sub": principal,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns its principal.
func (i *Issuer) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
