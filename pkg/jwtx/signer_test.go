package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/registrar/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHS256SignAndVerify(t *testing.T) {
	s, err := jwtx.NewHS256(testSecret, "registrar")
	require.NoError(t, err)
	require.Equal(t, "HS256", s.Alg())

	now := time.Now().UTC()
	token, err := s.Sign(jwtx.NewSessionClaims("session-abc", time.Hour, "registrar", now))
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(token, "."))

	claims, err := s.Verify(token, now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, "session-abc", claims.SID)
	require.Equal(t, "registrar", claims.Issuer)
}

func TestHS256Verify_Failures(t *testing.T) {
	s, err := jwtx.NewHS256(testSecret, "registrar")
	require.NoError(t, err)
	now := time.Now().UTC()

	token, err := s.Sign(jwtx.NewSessionClaims("session-abc", time.Hour, "registrar", now))
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		_, err := s.Verify(token, now.Add(2*time.Hour))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("tampered signature", func(t *testing.T) {
		sig := strings.LastIndex(token, ".") + 1
		repl := "A"
		if token[sig] == 'A' {
			repl = "B"
		}
		_, err := s.Verify(token[:sig]+repl+token[sig+1:], now)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "registrar")
		require.NoError(t, err)
		_, err = other.Verify(token, now)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := jwtx.NewHS256(testSecret, "someone-else")
		require.NoError(t, err)
		_, err = other.Verify(token, now)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not-a-token", now)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwtx.NewSessionClaims("x", time.Hour, "registrar", now))
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.Verify(raw, now)
		require.Error(t, err)
	})

	t.Run("missing sid", func(t *testing.T) {
		raw, err := s.Sign(jwtx.NewSessionClaims("", time.Hour, "registrar", now))
		require.NoError(t, err)
		_, err = s.Verify(raw, now)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}

func TestNewHS256_RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), "")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}
