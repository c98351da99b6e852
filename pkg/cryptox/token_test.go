package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	a := FingerprintToken("nonce-a")
	require.Len(t, a, 43)
	require.Equal(t, a, FingerprintToken("nonce-a"))
	require.NotEqual(t, a, FingerprintToken("nonce-b"))
}

func TestEqualTokens(t *testing.T) {
	require.True(t, EqualTokens("abc", "abc"))
	require.False(t, EqualTokens("abc", "abd"))
	require.False(t, EqualTokens("abc", "ab"))
	require.False(t, EqualTokens("", "a"))
}

func TestDeriveKey(t *testing.T) {
	csrf, err := DeriveKey("s3cret", "csrf")
	require.NoError(t, err)
	require.Len(t, csrf, KeySize)

	again, err := DeriveKey("s3cret", "csrf")
	require.NoError(t, err)
	require.Equal(t, csrf, again, "derivation must be deterministic")

	flash, err := DeriveKey("s3cret", "flash")
	require.NoError(t, err)
	require.NotEqual(t, csrf, flash, "labels must separate keys")

	other, err := DeriveKey("different", "csrf")
	require.NoError(t, err)
	require.NotEqual(t, csrf, other)

	_, err = DeriveKey("", "csrf")
	require.ErrorIs(t, err, ErrEmptySecret)
}
