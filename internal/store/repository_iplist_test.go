package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPListRepository(t *testing.T) {
	dir := t.TempDir()
	white := filepath.Join(dir, "whitelist.txt")
	black := filepath.Join(dir, "blacklist.txt")
	require.NoError(t, os.WriteFile(black, []byte("# banned\n10.0.0.1\n\nnot-an-ip\n10.0.0.1\n::ffff:10.0.0.2\n"), 0o600))

	repo := NewIPListRepository(white, black, logger.Nop())
	ctx := context.Background()

	lists, err := repo.Lists(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists.Whitelist, "missing file reads as empty list")
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, lists.Blacklist)

	require.NoError(t, repo.AddToBlacklist(ctx, "192.168.1.9"))
	require.NoError(t, repo.AddToBlacklist(ctx, "192.168.1.9"))
	require.NoError(t, repo.AddToBlacklist(ctx, "garbage"))

	data, err := os.ReadFile(black)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1\n10.0.0.2\n192.168.1.9\n", string(data))

	require.NoError(t, repo.Replace(ctx, models.IPLists{Whitelist: []string{"127.0.0.1", "bad"}, Blacklist: nil}))
	lists, err = repo.Lists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1"}, lists.Whitelist)
	assert.Empty(t, lists.Blacklist)

	require.NoError(t, os.WriteFile(white, []byte("127.0.0.2\n"), 0o600))
	lists, err = repo.Lists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.2"}, lists.Whitelist, "external edits are picked up")
}
