package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, s.Set("mock-session", `{"user":{}}`))
	require.NoError(t, s.Set("auth_token", "abc"))

	reopened, err := Open(path, "")
	require.NoError(t, err)
	v, ok := reopened.Get("mock-session")
	assert.True(t, ok)
	assert.Equal(t, `{"user":{}}`, v)

	require.NoError(t, reopened.Remove("auth_token", "missing"))
	_, ok = reopened.Get("auth_token")
	assert.False(t, ok)
}

func TestFileStore_Sealed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := Open(path, "device-secret")
	require.NoError(t, err)
	require.NoError(t, s.Set("auth-session", "refresh-me"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "refresh-me")

	reopened, err := Open(path, "device-secret")
	require.NoError(t, err)
	v, _ := reopened.Get("auth-session")
	assert.Equal(t, "refresh-me", v)

	_, err = Open(path, "other-secret")
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path, "")
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))

	require.NoError(t, s.Clear())

	reopened, err := Open(path, "")
	require.NoError(t, err)
	_, ok := reopened.Get("a")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("draft", "x"))
	v, ok := m.Get("draft")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	require.NoError(t, m.Clear())
	_, ok = m.Get("draft")
	assert.False(t, ok)
}
