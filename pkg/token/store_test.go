package token

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tokens.json")
}

func TestStoreRoundTrip(t *testing.T) {
	path := tempPath(t)

	s, err := NewStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken())

	require.NoError(t, s.SetPair("access-1", "refresh-1"))

	// A fresh store over the same file sees the persisted pair.
	reloaded, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "access-1", reloaded.AccessToken())
	refresh, err := reloaded.RefreshToken()
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestSetAccessTokenKeepsRefreshToken(t *testing.T) {
	s, err := NewStore(tempPath(t))
	require.NoError(t, err)
	require.NoError(t, s.SetPair("access-1", "refresh-1"))

	require.NoError(t, s.SetAccessToken("access-2"))

	assert.Equal(t, "access-2", s.AccessToken())
	refresh, err := s.RefreshToken()
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestClearRemovesFile(t *testing.T) {
	path := tempPath(t)
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetPair("access", "refresh"))

	require.NoError(t, s.Clear())

	assert.Empty(t, s.AccessToken())
	_, err = s.RefreshToken()
	assert.ErrorIs(t, err, ErrNoRefreshToken)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already cleared store is not an error.
	require.NoError(t, s.Clear())
}

func TestRefreshTokenAbsent(t *testing.T) {
	s, err := NewStore(tempPath(t))
	require.NoError(t, err)

	_, err = s.RefreshToken()
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestAccessTokenExpiresWithin(t *testing.T) {
	s, err := NewStore(tempPath(t))
	require.NoError(t, err)

	// Empty store counts as expiring.
	assert.True(t, s.AccessTokenExpiresWithin(time.Minute))

	require.NoError(t, s.SetPair(signedToken(t, time.Now().Add(time.Hour)), "refresh"))
	assert.False(t, s.AccessTokenExpiresWithin(time.Minute))
	assert.True(t, s.AccessTokenExpiresWithin(2*time.Hour))

	// An opaque token cannot be inspected, so treat it as expiring.
	require.NoError(t, s.SetPair("not-a-jwt", "refresh"))
	assert.True(t, s.AccessTokenExpiresWithin(time.Minute))
}
