// Package pqueue provides the min-priority queue shared by the
// pathfinding engines.
//
// The queue deliberately has no decrease-key operation. When an item's
// priority improves, callers push a second entry for the same id and
// treat whichever entry surfaces later as stale: an entry popped for an
// already-finalized item is discarded without effect. This trades a
// little queue growth for a much simpler heap than an indexed
// decrease-key structure, and is an intentional design, not a defect.
package pqueue

import "container/heap"

// Item is one queue entry: an id and the priority it was pushed with.
type Item struct {
	ID       string
	Priority float64
}

// entries implements heap.Interface. Ties on priority fall back to id
// order so the pop sequence never depends on insertion history.
type entries []Item

func (e entries) Len() int { return len(e) }

func (e entries) Less(i, j int) bool {
	if e[i].Priority != e[j].Priority {
		return e[i].Priority < e[j].Priority
	}
	return e[i].ID < e[j].ID
}

func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries) Push(x any) { *e = append(*e, x.(Item)) }

func (e *entries) Pop() any {
	old := *e
	n := len(old)
	it := old[n-1]
	*e = old[:n-1]
	return it
}

// Queue is a binary min-heap of Items. The zero value is ready to use.
type Queue struct {
	items entries
}

// New returns an empty queue.
func New() *Queue { return &Queue{} }

// Len returns the number of entries, counting duplicates.
func (q *Queue) Len() int { return len(q.items) }

// Push enqueues id at the given priority. Duplicate ids are allowed.
func (q *Queue) Push(id string, priority float64) {
	heap.Push(&q.items, Item{ID: id, Priority: priority})
}

// Pop removes and returns the minimum entry. The second return is false
// when the queue is empty.
func (q *Queue) Pop() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	return heap.Pop(&q.items).(Item), true
}

// Snapshot copies the current entries in heap array order. The copy is
// detached: later queue operations never alter it.
func (q *Queue) Snapshot() []Item {
	if len(q.items) == 0 {
		return nil
	}
	out := make([]Item, len(q.items))
	copy(out, q.items)
	return out
}
