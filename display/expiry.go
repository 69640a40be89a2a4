package display

import (
	"container/heap"
	"time"

	"github.com/Drolfothesgnir/hintstack/element"
)

type expiry struct {
	at  time.Time
	tag element.Tag
	seq uint64
}

// expiryHeap orders expirations by time. Entries are never removed early;
// an entry whose seq no longer matches the shown element is stale.
type expiryHeap []expiry

func (h expiryHeap) Len() int           { return len(h) }
func (h expiryHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h expiryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *expiryHeap) Push(x any) {
	*h = append(*h, x.(expiry))
}

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func (h *expiryHeap) push(e expiry) {
	heap.Push(h, e)
}

// popDue removes and returns the entries due at now.
func (h *expiryHeap) popDue(now time.Time, fn func(expiry)) {
	for h.Len() > 0 && !(*h)[0].at.After(now) {
		fn(heap.Pop(h).(expiry))
	}
}
