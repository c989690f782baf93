package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")
	a := DeriveKey([]byte("pw"), salt)
	b := DeriveKey([]byte("pw"), salt)
	require.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, DeriveKey([]byte("pw2"), salt))
}

func TestNewVerifierAndCheckPassword(t *testing.T) {
	salt, verifier := NewVerifier([]byte("correct horse"))
	require.Len(t, salt, SaltSize)
	require.Len(t, verifier, 32)

	assert.True(t, CheckPassword([]byte("correct horse"), salt, verifier))
	assert.False(t, CheckPassword([]byte("wrong horse"), salt, verifier))
	assert.False(t, CheckPassword([]byte("correct horse"), []byte("other salt"), verifier))
}

func TestNewVerifier_SaltIsRandom(t *testing.T) {
	s1, v1 := NewVerifier([]byte("pw"))
	s2, v2 := NewVerifier([]byte("pw"))
	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, v1, v2)
}
