// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package queue

import (
	"container/heap"
	"container/list"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/simcop2387/usgromana/models"
)

// PromptQueue is the shared queue of the execution engine. All state is
// guarded by mu; consumers wait on cond for pending work.
type PromptQueue struct {
	mu   sync.Mutex
	cond *sync.Cond

	pending itemHeap
	seq     uint64
	number  float64

	running     map[int64]*item
	taskCounter int64

	// history holds *models.HistoryRecord in insertion order. Prompt ids
	// are client supplied, so records are indexed per owner.
	history      *list.List
	historyIndex map[historyKey]*list.Element
	maxHistory   int
}

type historyKey struct {
	owner    string
	promptID string
}

func recordKey(r *models.HistoryRecord) historyKey {
	return historyKey{owner: r.Owner, promptID: r.PromptID}
}

// NewPromptQueue returns an empty queue keeping at most maxHistory records.
func NewPromptQueue(maxHistory int) *PromptQueue {
	q := &PromptQueue{
		running:      make(map[int64]*item),
		history:      list.New(),
		historyIndex: make(map[historyKey]*list.Element),
		maxHistory:   maxHistory,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// NextNumber returns the next submission number. Entries put at the front
// get a negative number and so sort before every regular entry.
func (q *PromptQueue) NextNumber(front bool) float64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.number++
	if front {
		return -q.number
	}
	return q.number
}

func (q *PromptQueue) Put(owner string, entry models.QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	heap.Push(&q.pending, &item{entry: entry.Clone(), owner: owner, seq: q.seq})
	q.cond.Broadcast()
}

// Get pops the highest-priority entry and marks it running. It waits until
// an entry is available, timeout elapses (when positive) or ctx is done; the
// boolean is false when no entry was taken.
func (q *PromptQueue) Get(ctx context.Context, timeout time.Duration) (models.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	expired := false
	if timeout > 0 {
		t := time.AfterFunc(timeout, func() {
			q.mu.Lock()
			expired = true
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer t.Stop()
	}
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	for q.pending.Len() == 0 {
		if expired || ctx.Err() != nil {
			return models.Task{}, false
		}
		q.cond.Wait()
	}

	it := heap.Pop(&q.pending).(*item)
	id := q.taskCounter
	q.taskCounter++
	q.running[id] = it

	return models.Task{ID: id, Owner: it.owner, Entry: it.entry.Clone()}, true
}

// TaskDone archives a running task under its prompt id and trims the
// history to its cap, oldest record first.
func (q *PromptQueue) TaskDone(taskID int64, result models.HistoryResult) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	it, ok := q.running[taskID]
	if !ok {
		return ErrUnknownTask
	}
	delete(q.running, taskID)

	record := models.HistoryRecord{
		PromptID: it.entry.PromptID,
		Owner:    it.owner,
		Prompt:   it.entry,
		Outputs:  result.Outputs,
		Status:   result.Status,
		Meta:     result.Meta,
	}.Clone()
	if record.Outputs == nil {
		record.Outputs = map[string]any{}
	}
	if record.Status.Messages == nil {
		record.Status.Messages = []any{}
	}

	key := recordKey(&record)
	if el, exists := q.historyIndex[key]; exists {
		q.history.Remove(el)
	}
	q.historyIndex[key] = q.history.PushBack(&record)

	for q.maxHistory > 0 && q.history.Len() > q.maxHistory {
		oldest := q.history.Front()
		delete(q.historyIndex, recordKey(oldest.Value.(*models.HistoryRecord)))
		q.history.Remove(oldest)
	}
	return nil
}

// Current returns the running and pending entries of owner. Running entries
// are ordered by task id and pending ones by priority.
func (q *PromptQueue) Current(owner string) (running, pending []models.QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	running = []models.QueueEntry{}
	for _, id := range slices.Sorted(maps.Keys(q.running)) {
		if it := q.running[id]; it.owner == owner {
			running = append(running, it.entry.Clone())
		}
	}

	ordered := slices.Clone(q.pending)
	slices.SortFunc(ordered, compareItems)
	pending = []models.QueueEntry{}
	for _, it := range ordered {
		if it.owner == owner {
			pending = append(pending, it.entry.Clone())
		}
	}
	return running, pending
}

// DeleteItem removes the first pending entry of owner, in priority order,
// that satisfies pred.
func (q *PromptQueue) DeleteItem(owner string, pred func(models.QueueEntry) bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	var match *item
	for _, it := range q.pending {
		if it.owner != owner || !pred(it.entry.Clone()) {
			continue
		}
		if match == nil || compareItems(it, match) < 0 {
			match = it
		}
	}
	if match == nil {
		return false
	}
	heap.Remove(&q.pending, match.index)
	return true
}

// Wipe removes every pending entry of owner.
func (q *PromptQueue) Wipe(owner string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.pending[:0]
	for _, it := range q.pending {
		if it.owner != owner {
			kept = append(kept, it)
		}
	}
	clear(q.pending[len(kept):])
	q.pending = kept
	for i, it := range q.pending {
		it.index = i
	}
	heap.Init(&q.pending)
}

// History returns a window of the records of owner in insertion order. With
// a prompt id only that record is returned. A negative offset selects the
// last MaxItems records.
func (q *PromptQueue) History(owner string, query models.HistoryQuery) models.HistoryPage {
	q.mu.Lock()
	defer q.mu.Unlock()

	page := models.HistoryPage{}
	if query.PromptID != "" {
		if el, ok := q.historyIndex[historyKey{owner: owner, promptID: query.PromptID}]; ok {
			page = append(page, el.Value.(*models.HistoryRecord).Clone())
		}
		return page
	}

	var owned []*models.HistoryRecord
	for el := q.history.Front(); el != nil; el = el.Next() {
		if r := el.Value.(*models.HistoryRecord); r.Owner == owner {
			owned = append(owned, r)
		}
	}

	offset := query.Offset
	if offset < 0 {
		offset = 0
		if query.MaxItems > 0 {
			offset = max(0, len(owned)-query.MaxItems)
		}
	}
	for _, r := range owned[min(offset, len(owned)):] {
		if query.MaxItems > 0 && len(page) >= query.MaxItems {
			break
		}
		page = append(page, r.Clone())
	}
	return page
}

func (q *PromptQueue) DeleteHistory(owner, promptID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := historyKey{owner: owner, promptID: promptID}
	el, ok := q.historyIndex[key]
	if !ok {
		return false
	}
	q.history.Remove(el)
	delete(q.historyIndex, key)
	return true
}

// WipeHistory removes every history record of owner.
func (q *PromptQueue) WipeHistory(owner string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for el := q.history.Front(); el != nil; {
		next := el.Next()
		if r := el.Value.(*models.HistoryRecord); r.Owner == owner {
			delete(q.historyIndex, recordKey(r))
			q.history.Remove(el)
		}
		el = next
	}
}
