package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret NewHS256 accepts.
const MinSecretLength = 16

// HS256 signs and verifies compact HMAC-SHA256 tokens with a shared secret.
type HS256 struct {
	key    []byte
	issuer string
}

// NewHS256 creates a signer/verifier. Tokens it verifies must carry issuer
// when one is given.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	return &HS256{key: secret, issuer: issuer}, nil
}

// Alg is the JOSE algorithm name, HS256.
func (s *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns the claims into a signed JWT string.
func (s *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Verify validates the signature, issuer and expiry of token at now.
func (s *HS256) Verify(token string, now time.Time) (Claims, error) {
	// Pin the method so a token cannot pick its own algorithm
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, ErrMalformed
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	case !parsed.Valid:
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.Check(s.issuer, now); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
