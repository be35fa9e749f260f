package queue

import (
	"cmp"

	"github.com/simcop2387/usgromana/models"
)

type item struct {
	entry models.QueueEntry
	owner string
	seq   uint64
	index int
}

func compareItems(a, b *item) int {
	if c := cmp.Compare(a.entry.Number, b.entry.Number); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// itemHeap orders pending items by entry number, then by submission order.
type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool { return compareItems(h[i], h[j]) < 0 }

func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *itemHeap) Push(x any) {
	it := x.(*item)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}
