package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simcop2387/usgromana/internal/logger"
	"github.com/simcop2387/usgromana/internal/utils"
	"github.com/simcop2387/usgromana/models"
)

type fakeIdentities map[string]models.Identity

func (f fakeIdentities) IdentityByID(_ context.Context, userID string) models.Identity {
	if id, ok := f[userID]; ok {
		return id
	}
	return models.Anonymous()
}

func userIdentity(id, role string, perms models.Permissions) models.Identity {
	return models.Identity{
		UserID:        id,
		Username:      "user-" + id,
		Role:          role,
		Permissions:   perms,
		Authenticated: true,
	}
}

func ctxFor(identity models.Identity) context.Context {
	return utils.WithIdentity(context.Background(), identity)
}

func newTestIsolator(identities fakeIdentities) *Isolator {
	return NewIsolator(NewPromptQueue(100), identities, "public", logger.Nop())
}

func TestIsolator_OwnerFromContext(t *testing.T) {
	iso := newTestIsolator(nil)

	assert.Equal(t, "public", iso.Owner(context.Background()))
	assert.Equal(t, "public", iso.Owner(ctxFor(models.Anonymous())))
	assert.Equal(t, "u1", iso.Owner(ctxFor(userIdentity("u1", models.RoleUser, nil))))
}

func TestIsolator_PutDropsWhenRunDenied(t *testing.T) {
	alice := userIdentity("alice", models.RoleUser, models.Permissions{models.PermRun: false})
	bob := userIdentity("bob", models.RoleUser, models.Permissions{})
	iso := newTestIsolator(fakeIdentities{"alice": alice, "bob": bob})

	assert.False(t, iso.Put(ctxFor(alice), entry("a1", 1)))
	assert.True(t, iso.Put(ctxFor(bob), entry("b1", 1)))

	_, pending := iso.CurrentQueue(ctxFor(alice))
	assert.Empty(t, pending)
	_, pending = iso.CurrentQueue(ctxFor(bob))
	assert.Equal(t, []string{"b1"}, promptIDs(pending))
}

func TestIsolator_PutUsesCurrentPermissions(t *testing.T) {
	// the context identity still allows running, the stored one no longer does
	stale := userIdentity("alice", models.RoleUser, models.Permissions{})
	current := userIdentity("alice", models.RoleUser, models.Permissions{models.PermRun: false})
	iso := newTestIsolator(fakeIdentities{"alice": current})

	assert.False(t, iso.Put(ctxFor(stale), entry("a1", 1)))
}

func TestIsolator_PutFromUnknownOwnerIsKept(t *testing.T) {
	iso := newTestIsolator(fakeIdentities{})

	assert.True(t, iso.Put(context.Background(), entry("anon", 1)))
	_, pending := iso.CurrentQueue(context.Background())
	assert.Equal(t, []string{"anon"}, promptIDs(pending))
}

func TestIsolator_ConcurrentSubmittersSeeOnlyOwnEntries(t *testing.T) {
	identities := fakeIdentities{}
	owners := []string{"alice", "bob", "carol"}
	for _, o := range owners {
		identities[o] = userIdentity(o, models.RoleUser, models.Permissions{})
	}
	iso := newTestIsolator(identities)

	var wg sync.WaitGroup
	for _, o := range owners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := ctxFor(identities[o])
			for i := range 20 {
				iso.Put(ctx, entry(fmt.Sprintf("%s-%d", o, i), iso.NextNumber(false)))
			}
		}()
	}
	wg.Wait()

	for _, o := range owners {
		_, pending := iso.CurrentQueue(ctxFor(identities[o]))
		require.Len(t, pending, 20)
		for _, e := range pending {
			assert.Contains(t, e.PromptID, o+"-")
		}
	}
}

func TestIsolator_WorkerCarriesOwnerToHistory(t *testing.T) {
	alice := userIdentity("alice", models.RoleUser, models.Permissions{})
	bob := userIdentity("bob", models.RoleUser, models.Permissions{})
	iso := newTestIsolator(fakeIdentities{"alice": alice, "bob": bob})

	require.True(t, iso.Put(ctxFor(alice), entry("a1", 1)))

	// the worker has no identity of its own
	task, ok := iso.Get(context.Background(), time.Second)
	require.True(t, ok)
	assert.Equal(t, "alice", task.Owner)

	running, _ := iso.CurrentQueue(ctxFor(alice))
	assert.Len(t, running, 1)
	running, _ = iso.CurrentQueue(ctxFor(bob))
	assert.Empty(t, running)

	require.NoError(t, iso.TaskDone(task.ID, models.HistoryResult{Status: models.HistoryStatus{Completed: true}}))

	assert.Len(t, iso.History(ctxFor(alice), models.HistoryQuery{Offset: -1}), 1)
	assert.Empty(t, iso.History(ctxFor(bob), models.HistoryQuery{Offset: -1}))
	assert.False(t, iso.DeleteHistoryItem(ctxFor(bob), "a1"))
	assert.True(t, iso.DeleteHistoryItem(ctxFor(alice), "a1"))
}

func TestIsolator_WipeIsOwnerScoped(t *testing.T) {
	alice := userIdentity("alice", models.RoleUser, models.Permissions{})
	bob := userIdentity("bob", models.RoleUser, models.Permissions{})
	iso := newTestIsolator(fakeIdentities{"alice": alice, "bob": bob})

	iso.Put(ctxFor(alice), entry("a1", 1))
	iso.Put(ctxFor(bob), entry("b1", 2))

	iso.WipeQueue(ctxFor(alice))
	_, pending := iso.CurrentQueue(ctxFor(bob))
	assert.Equal(t, []string{"b1"}, promptIDs(pending))

	assert.False(t, iso.DeleteQueueItem(ctxFor(alice), func(models.QueueEntry) bool { return true }))
	assert.True(t, iso.DeleteQueueItem(ctxFor(bob), func(e models.QueueEntry) bool { return e.PromptID == "b1" }))

	iso.WipeHistory(ctxFor(alice))
}

func TestScopeOutputPaths(t *testing.T) {
	prompt := json.RawMessage(`{
		"9": {"class_type": "SaveImage", "inputs": {"filename_prefix": "ComfyUI", "images": ["8", 0]}},
		"10": {"inputs": {"filename_prefix": "alice/already"}},
		"11": {"inputs": {"seed": 123456789012345678}}
	}`)

	out, err := ScopeOutputPaths(prompt, "alice")
	require.NoError(t, err)

	var doc map[string]map[string]any
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&doc))

	inputs := func(node string) map[string]any {
		in, ok := doc[node]["inputs"].(map[string]any)
		require.True(t, ok, "node %s has no inputs", node)
		return in
	}
	assert.Equal(t, "SaveImage", doc["9"]["class_type"])
	assert.Equal(t, "alice/ComfyUI", inputs("9")["filename_prefix"])
	assert.Equal(t, "alice/already", inputs("10")["filename_prefix"])
	assert.Equal(t, json.Number("123456789012345678"), inputs("11")["seed"])
}

func TestScopeOutputPaths_Invalid(t *testing.T) {
	for _, raw := range []string{`"text"`, `42`, `{`} {
		_, err := ScopeOutputPaths(json.RawMessage(raw), "alice")
		assert.ErrorIs(t, err, ErrInvalidPrompt, raw)
	}
}
