// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/pickpool/models"
)

var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is how long an issued token stays valid
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the JWT payload; the subject is the user ID
type Claims struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the caller described by the claims
func (c *Claims) Identity() models.Identity {
	return models.Identity{
		Sub:       c.Subject,
		Name:      c.Name,
		AvatarURL: c.AvatarURL,
	}
}

// Issuer signs and verifies HS256 bearer tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a token for the user
func (i *Issuer) Sign(user models.User) (string, error) {
	now := i.now()
	claims := Claims{
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Every failure is reported as ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// TryResolve returns the caller's claims when the request carries a valid
// bearer token. Absent or invalid tokens are not an error here; the caller
// is simply anonymous.
func (i *Issuer) TryResolve(r *http.Request) (*Claims, bool) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, false
	}
	claims, err := i.Verify(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
