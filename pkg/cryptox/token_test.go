package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for size, encodedLen := range map[int]int{TokenSize128: 22, TokenSize256: 43, 24: 32} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		require.Len(t, a, encodedLen)

		raw, err := base64.RawURLEncoding.DecodeString(a)
		require.NoError(t, err)
		require.Len(t, raw, size)

		b := MustGenerateToken(size)
		require.NotEqual(t, a, b)
	}
}

func TestGenerateTokenRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := GenerateToken(size)
		require.Error(t, err)
	}
	require.Panics(t, func() { MustGenerateToken(0) })
}

func TestFingerprintToken(t *testing.T) {
	token := MustGenerateToken(TokenSize256)

	fp := FingerprintToken(token)
	require.Equal(t, fp, FingerprintToken(token))
	require.NotEqual(t, token, fp)
	require.Len(t, fp, 43)
	require.NotEqual(t, fp, FingerprintToken(token+"x"))
}
