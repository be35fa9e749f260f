package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simcop2387/usgromana/models"
)

func entry(id string, number float64) models.QueueEntry {
	return models.QueueEntry{
		Number:    number,
		PromptID:  id,
		Prompt:    json.RawMessage(`{"1":{"inputs":{"seed":1}}}`),
		ExtraData: map[string]any{"client_id": "c-" + id},
	}
}

func promptIDs(entries []models.QueueEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PromptID)
	}
	return ids
}

func TestPromptQueue_GetOrdersByNumberThenSubmission(t *testing.T) {
	q := NewPromptQueue(10)
	q.Put("a", entry("p3", 3))
	q.Put("a", entry("p1", 1))
	q.Put("b", entry("p1b", 1))
	q.Put("a", entry("front", -5))

	var got []string
	for range 4 {
		task, ok := q.Get(context.Background(), time.Second)
		require.True(t, ok)
		got = append(got, task.Entry.PromptID)
	}
	assert.Equal(t, []string{"front", "p1", "p1b", "p3"}, got)
}

func TestPromptQueue_GetAssignsIncreasingTaskIDs(t *testing.T) {
	q := NewPromptQueue(10)
	q.Put("a", entry("p1", 1))
	q.Put("b", entry("p2", 2))

	t1, ok := q.Get(context.Background(), time.Second)
	require.True(t, ok)
	t2, ok := q.Get(context.Background(), time.Second)
	require.True(t, ok)

	assert.Less(t, t1.ID, t2.ID)
	assert.Equal(t, "a", t1.Owner)
	assert.Equal(t, "b", t2.Owner)
}

func TestPromptQueue_GetTimesOut(t *testing.T) {
	q := NewPromptQueue(10)

	start := time.Now()
	_, ok := q.Get(context.Background(), 30*time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestPromptQueue_GetReturnsOnContextCancel(t *testing.T) {
	q := NewPromptQueue(10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool)
	go func() {
		_, ok := q.Get(ctx, 0)
		done <- ok
	}()

	cancel()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("Get did not return after cancel")
	}
}

func TestPromptQueue_GetWakesOnPut(t *testing.T) {
	q := NewPromptQueue(10)

	done := make(chan models.Task)
	go func() {
		task, _ := q.Get(context.Background(), 5*time.Second)
		done <- task
	}()

	time.Sleep(20 * time.Millisecond)
	q.Put("a", entry("late", 1))

	select {
	case task := <-done:
		assert.Equal(t, "late", task.Entry.PromptID)
	case <-time.After(2 * time.Second):
		t.Fatal("Get was not woken by Put")
	}
}

func TestPromptQueue_ConcurrentTakeIsExclusive(t *testing.T) {
	q := NewPromptQueue(1000)
	const perOwner = 100

	var producers sync.WaitGroup
	for _, owner := range []string{"alice", "bob"} {
		producers.Add(1)
		go func() {
			defer producers.Done()
			for i := range perOwner {
				q.Put(owner, entry(fmt.Sprintf("%s-%d", owner, i), float64(i)))
			}
		}()
	}

	var (
		mu       sync.Mutex
		seen     = map[string]int{}
		produced atomic.Bool
	)
	var consumers sync.WaitGroup
	for range 4 {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for {
				task, ok := q.Get(context.Background(), 20*time.Millisecond)
				if !ok {
					if produced.Load() {
						return
					}
					continue
				}
				mu.Lock()
				seen[task.Entry.PromptID]++
				mu.Unlock()
				assert.NoError(t, q.TaskDone(task.ID, models.HistoryResult{}))
			}
		}()
	}

	producers.Wait()
	produced.Store(true)
	consumers.Wait()

	for {
		task, ok := q.Get(context.Background(), 10*time.Millisecond)
		if !ok {
			break
		}
		seen[task.Entry.PromptID]++
	}

	assert.Len(t, seen, 2*perOwner)
	for id, n := range seen {
		assert.Equal(t, 1, n, "entry %s delivered %d times", id, n)
	}
}

func TestPromptQueue_TaskDone(t *testing.T) {
	q := NewPromptQueue(10)
	q.Put("alice", entry("p1", 1))

	task, ok := q.Get(context.Background(), time.Second)
	require.True(t, ok)

	running, _ := q.Current("alice")
	assert.Equal(t, []string{"p1"}, promptIDs(running))

	err := q.TaskDone(task.ID, models.HistoryResult{
		Outputs: map[string]any{"9": map[string]any{"images": []any{"a.png"}}},
		Status:  models.HistoryStatus{StatusStr: "success", Completed: true},
	})
	require.NoError(t, err)

	running, _ = q.Current("alice")
	assert.Empty(t, running)

	page := q.History("alice", models.HistoryQuery{Offset: -1})
	require.Len(t, page, 1)
	assert.Equal(t, "p1", page[0].PromptID)
	assert.Equal(t, "alice", page[0].Owner)
	assert.True(t, page[0].Status.Completed)
	assert.NotNil(t, page[0].Status.Messages)

	assert.ErrorIs(t, q.TaskDone(task.ID, models.HistoryResult{}), ErrUnknownTask)
}

func complete(t *testing.T, q *PromptQueue, owner, id string) {
	t.Helper()
	q.Put(owner, entry(id, 1))
	task, ok := q.Get(context.Background(), time.Second)
	require.True(t, ok)
	require.NoError(t, q.TaskDone(task.ID, models.HistoryResult{}))
}

func TestPromptQueue_HistoryCapEvictsOldest(t *testing.T) {
	q := NewPromptQueue(3)
	for i := range 3 {
		complete(t, q, "alice", fmt.Sprintf("p%d", i))
	}
	complete(t, q, "alice", "p3")

	page := q.History("alice", models.HistoryQuery{Offset: -1})
	got := make([]string, 0, len(page))
	for _, r := range page {
		got = append(got, r.PromptID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, got)
}

func TestPromptQueue_HistoryWindow(t *testing.T) {
	q := NewPromptQueue(100)
	for i := range 5 {
		complete(t, q, "alice", fmt.Sprintf("a%d", i))
		complete(t, q, "bob", fmt.Sprintf("b%d", i))
	}

	ids := func(p models.HistoryPage) []string {
		out := []string{}
		for _, r := range p {
			out = append(out, r.PromptID)
		}
		return out
	}

	tests := []struct {
		name  string
		query models.HistoryQuery
		want  []string
	}{
		{"all", models.HistoryQuery{Offset: -1}, []string{"a0", "a1", "a2", "a3", "a4"}},
		{"last two", models.HistoryQuery{MaxItems: 2, Offset: -1}, []string{"a3", "a4"}},
		{"offset window", models.HistoryQuery{MaxItems: 2, Offset: 1}, []string{"a1", "a2"}},
		{"offset past end", models.HistoryQuery{Offset: 10}, []string{}},
		{"by prompt id", models.HistoryQuery{PromptID: "a2"}, []string{"a2"}},
		{"other owner's prompt id", models.HistoryQuery{PromptID: "b2"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(q.History("alice", tt.query)))
		})
	}
}

func TestPromptQueue_OwnerScopedMutations(t *testing.T) {
	q := NewPromptQueue(100)
	q.Put("alice", entry("a1", 1))
	q.Put("alice", entry("a2", 2))
	q.Put("bob", entry("b1", 1))

	assert.False(t, q.DeleteItem("alice", func(e models.QueueEntry) bool { return e.PromptID == "b1" }))
	assert.True(t, q.DeleteItem("alice", func(e models.QueueEntry) bool { return true }))

	_, pending := q.Current("alice")
	assert.Equal(t, []string{"a2"}, promptIDs(pending), "only the first match is removed")

	q.Wipe("alice")
	_, pending = q.Current("alice")
	assert.Empty(t, pending)
	_, pending = q.Current("bob")
	assert.Equal(t, []string{"b1"}, promptIDs(pending))

	task, ok := q.Get(context.Background(), time.Second)
	require.True(t, ok, "heap must stay valid after removals")
	assert.Equal(t, "b1", task.Entry.PromptID)

	require.NoError(t, q.TaskDone(task.ID, models.HistoryResult{}))
	complete(t, q, "alice", "a3")

	assert.False(t, q.DeleteHistory("alice", "b1"))
	q.WipeHistory("alice")
	assert.Empty(t, q.History("alice", models.HistoryQuery{Offset: -1}))
	assert.Len(t, q.History("bob", models.HistoryQuery{Offset: -1}), 1)

	assert.True(t, q.DeleteHistory("bob", "b1"))
	assert.Empty(t, q.History("bob", models.HistoryQuery{Offset: -1}))
}

func TestPromptQueue_SharedPromptIDKeepsOwnersApart(t *testing.T) {
	q := NewPromptQueue(100)
	complete(t, q, "bob", "shared")
	complete(t, q, "alice", "shared")

	require.Len(t, q.History("bob", models.HistoryQuery{Offset: -1}), 1)
	require.Len(t, q.History("alice", models.HistoryQuery{Offset: -1}), 1)

	page := q.History("bob", models.HistoryQuery{PromptID: "shared"})
	require.Len(t, page, 1)
	assert.Equal(t, "bob", page[0].Owner)

	assert.True(t, q.DeleteHistory("alice", "shared"))
	assert.Empty(t, q.History("alice", models.HistoryQuery{Offset: -1}))
	assert.Len(t, q.History("bob", models.HistoryQuery{Offset: -1}), 1)

	q.WipeHistory("bob")
	complete(t, q, "alice", "shared")
	assert.Len(t, q.History("alice", models.HistoryQuery{PromptID: "shared"}), 1)
}

func TestPromptQueue_CurrentReturnsCopies(t *testing.T) {
	q := NewPromptQueue(10)
	q.Put("alice", entry("a1", 1))

	_, pending := q.Current("alice")
	pending[0].ExtraData["client_id"] = "tampered"
	pending[0].Prompt[0] = '['

	_, again := q.Current("alice")
	assert.Equal(t, "c-a1", again[0].ExtraData["client_id"])
	assert.JSONEq(t, `{"1":{"inputs":{"seed":1}}}`, string(again[0].Prompt))
}

func TestPromptQueue_NextNumber(t *testing.T) {
	q := NewPromptQueue(10)
	assert.Equal(t, float64(1), q.NextNumber(false))
	assert.Equal(t, float64(-2), q.NextNumber(true))
	assert.Equal(t, float64(3), q.NextNumber(false))
}

func TestHistoryPage_MarshalKeepsOrder(t *testing.T) {
	page := models.HistoryPage{
		{PromptID: "z", Owner: "u", Outputs: map[string]any{}},
		{PromptID: "a", Owner: "u", Outputs: map[string]any{}},
	}
	b, err := json.Marshal(page)
	require.NoError(t, err)

	s := string(b)
	assert.Less(t, strings.Index(s, `"z":`), strings.Index(s, `"a":`))

	var decoded map[string]models.HistoryRecord
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Len(t, decoded, 2)
}
