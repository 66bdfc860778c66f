package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobboard", "session.json")
	s := NewFileStorage(path)

	_, ok, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(TokenKey, "tok"))
	require.NoError(t, s.Set(UserKey, `{"id":1}`))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	v, ok, err := NewFileStorage(path).Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, s.Remove(TokenKey, UserKey))
	assert.NoFileExists(t, path)
}

func TestFileStorageReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))
	s := NewFileStorage(path)

	_, _, err := s.Get(TokenKey)
	assert.Error(t, err)

	require.NoError(t, s.Set(TokenKey, "tok"))
	v, ok, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}
