package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/simcop2387/usgromana/internal/config"
	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/store"
	"github.com/simcop2387/usgromana/models"
	"github.com/stretchr/testify/require"
)

const testPassword = "Passw0rd!"

func testStorageConfig(t *testing.T) config.Storage {
	t.Helper()
	dir := t.TempDir()
	return config.Storage{
		UsersFile:     filepath.Join(dir, "usgromana", "users.json"),
		GroupsFile:    filepath.Join(dir, "usgromana", "groups.json"),
		WhitelistFile: filepath.Join(dir, "usgromana", "whitelist.txt"),
		BlacklistFile: filepath.Join(dir, "usgromana", "blacklist.txt"),
		UsersRoot:     filepath.Join(dir, "users"),
		OutputDir:     filepath.Join(dir, "output"),
		InputDir:      filepath.Join(dir, "input"),
		TempDir:       filepath.Join(dir, "temp"),
	}
}

func newTestStorages(t *testing.T) (*store.Storages, config.Storage) {
	t.Helper()
	cfg := testStorageConfig(t)
	return store.NewStorages(cfg, logger.Nop()), cfg
}

// registerUsers registers names in order; the first becomes the bootstrap
// admin and authorizes the rest.
func registerUsers(t *testing.T, auth AuthService, names ...string) []models.User {
	t.Helper()
	var users []models.User
	for i, name := range names {
		req := models.RegisterRequest{Username: name, Password: testPassword}
		if i > 0 {
			req.AdminUsername = names[0]
			req.AdminPassword = testPassword
		}
		u, err := auth.Register(context.Background(), req)
		require.NoError(t, err)
		users = append(users, u)
	}
	return users
}

// recordingSafety is a SafetyService stub that records invalidations.
type recordingSafety struct {
	SafetyService

	mu          sync.Mutex
	invalidated []string
}

func (r *recordingSafety) Invalidate(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, username)
}

func (r *recordingSafety) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.invalidated...)
}
