package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := GetTokenService()

	token, err := svc.Generate(42, "alice", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	svc := GetTokenService()

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)

	_, err = svc.Verify("")
	assert.Error(t, err)
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	other := &TokenService{secret: []byte("different"), expireHours: 1}
	token, err := other.Generate(1, "mallory", "user")
	require.NoError(t, err)

	_, err = GetTokenService().Verify(token)
	assert.Error(t, err)
}
