package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), CredentialFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCredentialStoreToken(t *testing.T) {
	store := NewCredentialStore(writeCredentials(t, `{"token":"legacy-abc123"}`))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "legacy-abc123", token)
}

func TestCredentialStoreMissingFile(t *testing.T) {
	store := NewCredentialStore(filepath.Join(t.TempDir(), CredentialFileName))
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestCredentialStoreMalformed(t *testing.T) {
	store := NewCredentialStore(writeCredentials(t, `{broken`))
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestCredentialStoreBlankToken(t *testing.T) {
	store := NewCredentialStore(writeCredentials(t, `{"token":"   "}`))
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestCredentialStoreMemoizes(t *testing.T) {
	path := writeCredentials(t, `{"token":"once"}`)
	store := NewCredentialStore(path)

	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "once", token)

	// The file is read at most once per process; deleting it does not
	// change the memoized answer.
	require.NoError(t, os.Remove(path))
	token, ok = store.Token()
	assert.True(t, ok)
	assert.Equal(t, "once", token)
}

func TestCredentialStoreReset(t *testing.T) {
	path := writeCredentials(t, `{"token":"stale"}`)
	store := NewCredentialStore(path)

	_, ok := store.Token()
	require.True(t, ok)

	require.NoError(t, os.Remove(path))
	store.Reset()

	_, ok = store.Token()
	assert.False(t, ok, "reset must force a fresh read")
}
