package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a session cookie. The session record is server-side;
// the token names it by SID and bounds how long the cookie is honoured.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the opaque id of the server-side session record
	SID string `json:"sid"`
}

// NewSessionClaims builds claims for a session cookie issued at now.
func NewSessionClaims(sid string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SID: sid,
	}
}

// Check applies the rules the parser does not: the issuer when one is
// expected, a live expiry at now, and a non-empty session id.
func (c *Claims) Check(issuer string, now time.Time) error {
	switch {
	case issuer != "" && c.Issuer != issuer:
		return ErrIssuer
	case c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Time):
		return ErrExpired
	case c.SID == "":
		return ErrInvalidClaim
	}
	return nil
}
