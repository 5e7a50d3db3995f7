package myjwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", "aerocomply", 1)
	token, err := s.GenerateToken("u-1", "inspector")
	require.NoError(t, err)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Uuid)
	assert.Equal(t, "inspector", claims.Username)
	assert.Equal(t, "aerocomply", claims.Issuer)
}

func TestSigner_Rejects(t *testing.T) {
	s := NewSigner("secret", "", 1)
	token, err := s.GenerateToken("u-1", "x")
	require.NoError(t, err)

	_, err = NewSigner("other", "", 1).ParseToken(token)
	assert.Error(t, err)

	expired := NewSigner("secret", "", 1)
	expired.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	old, err := expired.GenerateToken("u-1", "x")
	require.NoError(t, err)
	_, err = s.ParseToken(old)
	assert.Error(t, err)

	_, err = NewSigner("", "", 1).GenerateToken("u-1", "x")
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = NewSigner("", "", 1).ParseToken(token)
	assert.ErrorIs(t, err, ErrEmptyKey)
}
