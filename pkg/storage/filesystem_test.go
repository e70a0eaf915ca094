package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("school.classSubjectSetups.v1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save("school.classSubjectSetups.v1", []byte(`{"1":[]}`)))
	data, err := store.Read("school.classSubjectSetups.v1")
	require.NoError(t, err)
	assert.Equal(t, `{"1":[]}`, string(data))

	info, err := os.Stat(store.Path("school.classSubjectSetups.v1"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete("school.classSubjectSetups.v1"))
	require.NoError(t, store.Delete("school.classSubjectSetups.v1"))
	_, err = store.Read("school.classSubjectSetups.v1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageKeepsNamesInsideBaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	assert.Equal(t, store.Path("session"), store.Path("../session"))
}
