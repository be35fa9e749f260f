package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserEnvStorage_RootRejectsTraversal(t *testing.T) {
	s := NewUserEnvStorage(t.TempDir(), t.TempDir(), logger.Nop())

	for _, name := range []string{"", ".", "..", "../alice", "a/b"} {
		_, err := s.Root(name)
		assert.ErrorIs(t, err, ErrPathTraversal, name)
	}

	root, err := s.Root("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", filepath.Base(root))
}

func TestUserEnvStorage_ListAndPurge(t *testing.T) {
	usersRoot := t.TempDir()
	s := NewUserEnvStorage(usersRoot, t.TempDir(), logger.Nop())
	ctx := context.Background()

	files, total, err := s.ListFiles(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, files, "missing root lists as empty")
	assert.Zero(t, total)

	base := filepath.Join(usersRoot, "alice")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sub"), 0o755))
	for _, name := range []string{"b.png", "a.png", "sub/c.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(base, filepath.FromSlash(name)), []byte("x"), 0o600))
	}

	files, total, err = s.ListFiles(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"a.png", "b.png"}, files)

	require.NoError(t, s.Purge(ctx, "alice"))
	entries, err := os.ReadDir(base)
	require.NoError(t, err, "root is recreated")
	assert.Empty(t, entries)
}

func TestUserEnvStorage_GalleryRoot(t *testing.T) {
	s := NewUserEnvStorage(t.TempDir(), t.TempDir(), logger.Nop())
	ctx := context.Background()

	got, err := s.GalleryRoot(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SetGalleryRoot(ctx, "alice", true))
	require.NoError(t, s.SetGalleryRoot(ctx, "bob", true))
	got, err = s.GalleryRoot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", got, "only one gallery root exists")

	require.NoError(t, s.SetGalleryRoot(ctx, "alice", false))
	got, _ = s.GalleryRoot(ctx)
	assert.Equal(t, "bob", got, "clearing another user's flag is a no-op")

	require.NoError(t, s.SetGalleryRoot(ctx, "bob", false))
	got, _ = s.GalleryRoot(ctx)
	assert.Empty(t, got)
}

func TestResolveWithinRoot_Symlink(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "escape")))

	_, err := ResolveWithinRoot(root, "escape/file.png")
	assert.ErrorIs(t, err, ErrPathTraversal)

	_, err = ResolveWithinRoot(root, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrPathTraversal)

	got, err := ResolveWithinRoot(root, "/nested/file.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "nested", "file.png"), got)
}
