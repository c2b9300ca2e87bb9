package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	t.Run("creates root recursively", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "a", "b", "c")
		store, err := NewLocalStore(root)
		require.NoError(t, err)
		assert.DirExists(t, store.Root())
	})

	t.Run("put and open", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "manifest.json", []byte(`{}`)))

		r, err := store.Open(ctx, "manifest.json")
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, []byte(`{}`), data)
	})

	t.Run("overwrites silently", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "f", []byte("one")))
		require.NoError(t, store.Put(ctx, "f", []byte("two")))

		r, err := store.Open(ctx, "f")
		require.NoError(t, err)
		data, _ := io.ReadAll(r)
		_ = r.Close()
		assert.Equal(t, []byte("two"), data)
	})

	t.Run("nested names", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "sub/dir/file", []byte("x")))
		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"sub/dir/file"}, names)
	})

	t.Run("not found", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Open(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list sorted with prefix", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		for _, name := range []string{"b.htj2k", "a.htj2k", "manifest.json"} {
			require.NoError(t, store.Put(ctx, name, []byte("x")))
		}

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.htj2k", "b.htj2k", "manifest.json"}, names)

		names, err = store.List(ctx, "man")
		require.NoError(t, err)
		assert.Equal(t, []string{"manifest.json"}, names)
	})

	t.Run("unwritable root", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("running as root, permissions not enforced")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o500))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		_, err := NewLocalStore(filepath.Join(dir, "out"))
		assert.Error(t, err)
	})
}
