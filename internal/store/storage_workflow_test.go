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

type workflowFixture struct {
	storage   WorkflowStorage
	usersRoot string
	global    string
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	f := &workflowFixture{usersRoot: t.TempDir(), global: t.TempDir()}
	env := NewUserEnvStorage(f.usersRoot, t.TempDir(), logger.Nop())
	missing := filepath.Join(t.TempDir(), "absent")
	f.storage = NewWorkflowStorage(env, []string{f.global, missing}, logger.Nop())
	return f
}

func writeWorkflow(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func paths(files []models.WorkflowFile) []string {
	out := []string{}
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestWorkflowStorage_SaveOpenListIsPrivate(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	saved, err := f.storage.Save(ctx, "alice", "portraits/face.json", []byte(`{"nodes":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "face.json", saved.Name)
	assert.Equal(t, "portraits", saved.Subfolder)
	assert.Equal(t, "portraits/face.json", saved.Path)
	assert.True(t, saved.Writable)
	require.NotNil(t, saved.Data)
	assert.Equal(t, saved.Path, saved.Data.Path)

	onDisk, err := os.ReadFile(filepath.Join(f.usersRoot, "alice", "workflows", "portraits", "face.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[]}`, string(onDisk))

	p, err := f.storage.Open(ctx, "alice", "portraits/face.json")
	require.NoError(t, err)
	assert.FileExists(t, p)

	_, err = f.storage.Open(ctx, "bob", "portraits/face.json")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)

	list, err := f.storage.List(ctx, "bob", true)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.storage.List(ctx, "alice", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"portraits/face.json"}, paths(list))
}

func TestWorkflowStorage_PrivateShadowsGlobal(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	writeWorkflow(t, f.global, "default.json", `{"v":"global"}`)
	writeWorkflow(t, f.global, "shared.json", `{}`)
	writeWorkflow(t, f.global, "notes.txt", `ignored`)

	_, err := f.storage.Save(ctx, "alice", "default.json", []byte(`{"v":"alice"}`))
	require.NoError(t, err)

	list, err := f.storage.List(ctx, "alice", true)
	require.NoError(t, err)
	require.Equal(t, []string{"default.json", "shared.json"}, paths(list))
	assert.False(t, list[0].Global)
	assert.True(t, list[1].Global)
	assert.False(t, list[1].Writable)

	p, err := f.storage.Open(ctx, "alice", "default.json")
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"alice"}`, string(data))

	p, err = f.storage.Open(ctx, "bob", "default.json")
	require.NoError(t, err)
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"global"}`, string(data))

	guest, err := f.storage.List(ctx, models.GuestUsername, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"default.json", "shared.json"}, paths(guest))
}

func TestWorkflowStorage_Delete(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	writeWorkflow(t, f.global, "shared.json", `{}`)
	_, err := f.storage.Save(ctx, "alice", "mine.json", []byte(`{}`))
	require.NoError(t, err)

	assert.ErrorIs(t, f.storage.Delete(ctx, "bob", "mine.json", false), ErrWorkflowNotFound)
	require.NoError(t, f.storage.Delete(ctx, "alice", "mine.json", false))
	assert.NoFileExists(t, filepath.Join(f.usersRoot, "alice", "workflows", "mine.json"))

	assert.ErrorIs(t, f.storage.Delete(ctx, "alice", "shared.json", false), ErrGlobalWorkflow)
	assert.FileExists(t, filepath.Join(f.global, "shared.json"))

	require.NoError(t, f.storage.Delete(ctx, "root_user", "shared.json", true))
	assert.NoFileExists(t, filepath.Join(f.global, "shared.json"))

	assert.ErrorIs(t, f.storage.Delete(ctx, "alice", "missing.json", true), ErrWorkflowNotFound)
}

func TestWorkflowStorage_RejectsEscapes(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	writeWorkflow(t, f.usersRoot, "bob/workflows/secret.json", `{}`)

	_, err := f.storage.Save(ctx, "alice", "../../bob/workflows/secret.json", []byte(`{}`))
	assert.ErrorIs(t, err, ErrPathTraversal)

	_, err = f.storage.Open(ctx, "alice", "../../bob/workflows/secret.json")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)

	_, err = f.storage.List(ctx, "../bob", true)
	assert.ErrorIs(t, err, ErrPathTraversal)
}
