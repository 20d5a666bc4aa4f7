package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterops/authkit/core/session"
)

func TestFileStorage(t *testing.T) {
	t.Parallel()

	t.Run("requires a path", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewFileStorage("")
		require.Error(t, err)
	})

	t.Run("get before set returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		storage, err := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, err)

		_, err = storage.Get(context.Background())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "session.json")
		storage, err := session.NewFileStorage(path)
		require.NoError(t, err)

		require.NoError(t, storage.Set(ctx, []byte(`{"access_token":"a"}`)))

		data, err := storage.Get(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `{"access_token":"a"}`, string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("set replaces previous blob", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage, err := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, err)

		require.NoError(t, storage.Set(ctx, []byte("first")))
		require.NoError(t, storage.Set(ctx, []byte("second")))

		data, err := storage.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		storage, err := session.NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, err)

		require.NoError(t, storage.Set(ctx, []byte("blob")))
		require.NoError(t, storage.Delete(ctx))
		require.NoError(t, storage.Delete(ctx))

		_, err = storage.Get(ctx)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestFileStorageSurvivesRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	storage, err := session.NewFileStorage(path)
	require.NoError(t, err)

	store := session.NewStore(storage)
	saved := testSession()
	require.NoError(t, store.Save(ctx, saved))

	// Simulate a new process: fresh storage and store over the same file.
	storage2, err := session.NewFileStorage(path)
	require.NoError(t, err)

	loaded, err := session.NewStore(storage2).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}
