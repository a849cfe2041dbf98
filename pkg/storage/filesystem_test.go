package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), 0o600)
	require.NoError(t, err)

	_, err = store.Read("authToken")
	assert.ErrorIs(t, err, ErrNotExist)

	name, err := store.Save("authToken", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "authToken", name)

	data, err := store.Read("authToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	info, err := os.Stat(store.Path("authToken"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete("authToken"))
	require.NoError(t, store.Delete("authToken"))
	_, err = store.Read("authToken")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStorageRejectsNestedNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = store.Save("../escape", []byte("x"))
	assert.Error(t, err)
	_, err = store.Read("a/b")
	assert.Error(t, err)
}

func TestNewLocalStorageRequiresDir(t *testing.T) {
	_, err := NewLocalStorage("", 0)
	assert.Error(t, err)
}
