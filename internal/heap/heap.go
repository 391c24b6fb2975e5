// Package heap provides the array-backed max-heap used to order moves by
// evaluation before a search node visits them, grounded directly on
// original_source/src/lib/heap.rs.
package heap

import "github.com/Mgrdich/chesscore/internal/boardstate"

// Entry is one heap element: a candidate motion, its evaluation (higher is
// better for the side whose turn it is), and an opaque key carried along
// for tie-breaking or external bookkeeping (e.g. a transposition-cache
// zkey).
type Entry struct {
	Evaluation int32
	Motion     boardstate.Motion
	Key        uint64
}

// Heap is a binary max-heap over Entry, ordered by Evaluation, backed by a
// flat slice rather than container/heap's interface-based model — the
// original implementation this is grounded on is a flat value-array heap
// with a direct sorted-drain operation, which maps onto a slice-backed
// heap more directly than onto container/heap.
type Heap struct {
	items []Entry
}

// New builds an empty heap with capacity hint n.
func New(n int) *Heap {
	return &Heap{items: make([]Entry, 0, n)}
}

// Len returns the number of entries currently in the heap.
func (h *Heap) Len() int { return len(h.items) }

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

func (h *Heap) less(i, j int) bool { return h.items[i].Evaluation < h.items[j].Evaluation }

func (h *Heap) swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

// bubble (sift-up) restores the heap property upward from index i after an
// insertion.
func (h *Heap) bubble(i int) {
	for i > 0 {
		p := parent(i)
		if !h.less(p, i) {
			return
		}
		h.swap(p, i)
		i = p
	}
}

// sift (sift-down) restores the heap property downward from index i after
// a removal.
func (h *Heap) sift(i int) {
	n := len(h.items)
	for {
		l, r := left(i), right(i)
		largest := i
		if l < n && h.less(largest, l) {
			largest = l
		}
		if r < n && h.less(largest, r) {
			largest = r
		}
		if largest == i {
			return
		}
		h.swap(i, largest)
		i = largest
	}
}

// Push inserts e into the heap.
func (h *Heap) Push(e Entry) {
	h.items = append(h.items, e)
	h.bubble(len(h.items) - 1)
}

// Pop removes and returns the highest-evaluation entry. It panics if the
// heap is empty — callers must check Len first, matching the original's
// assumption that Pop is only ever called on a non-empty heap.
func (h *Heap) Pop() Entry {
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.sift(0)
	}
	return top
}

// Peek returns the highest-evaluation entry without removing it, and
// whether the heap was non-empty.
func (h *Heap) Peek() (Entry, bool) {
	if len(h.items) == 0 {
		return Entry{}, false
	}
	return h.items[0], true
}

// ToSortedMotions drains the heap and returns its motions in descending
// evaluation order. The heap is empty after this call.
func (h *Heap) ToSortedMotions() []boardstate.Motion {
	out := make([]boardstate.Motion, 0, len(h.items))
	for h.Len() > 0 {
		out = append(out, h.Pop().Motion)
	}
	return out
}
