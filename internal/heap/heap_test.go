package heap

import (
	"testing"

	"github.com/Mgrdich/chesscore/internal/boardstate"
)

func TestPushPopOrdersDescending(t *testing.T) {
	h := New(0)
	vals := []int32{5, 1, 9, -3, 42, 0}
	for _, v := range vals {
		h.Push(Entry{Evaluation: v})
	}
	if h.Len() != len(vals) {
		t.Fatalf("Len() = %d, want %d", h.Len(), len(vals))
	}

	prev := int32(1 << 30)
	for h.Len() > 0 {
		e := h.Pop()
		if e.Evaluation > prev {
			t.Fatalf("Pop() returned %d after %d, not descending", e.Evaluation, prev)
		}
		prev = e.Evaluation
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	h := New(0)
	h.Push(Entry{Evaluation: 7})
	h.Push(Entry{Evaluation: 3})

	top, ok := h.Peek()
	if !ok || top.Evaluation != 7 {
		t.Fatalf("Peek() = %+v, %v; want eval 7, true", top, ok)
	}
	if h.Len() != 2 {
		t.Errorf("Len() after Peek() = %d, want 2", h.Len())
	}
}

func TestToSortedMotionsDrainsInOrder(t *testing.T) {
	h := New(0)
	m1 := boardstate.Motion{From: 1, To: 2}
	m2 := boardstate.Motion{From: 3, To: 4}
	m3 := boardstate.Motion{From: 5, To: 6}
	h.Push(Entry{Evaluation: 10, Motion: m1})
	h.Push(Entry{Evaluation: 100, Motion: m2})
	h.Push(Entry{Evaluation: 50, Motion: m3})

	sorted := h.ToSortedMotions()
	want := []boardstate.Motion{m2, m3, m1}
	if len(sorted) != len(want) {
		t.Fatalf("len(sorted) = %d, want %d", len(sorted), len(want))
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, sorted[i], want[i])
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", h.Len())
	}
}

func TestEmptyHeap(t *testing.T) {
	h := New(0)
	if _, ok := h.Peek(); ok {
		t.Errorf("Peek() on empty heap ok = true, want false")
	}
	if got := h.ToSortedMotions(); len(got) != 0 {
		t.Errorf("ToSortedMotions() on empty heap = %v, want empty", got)
	}
}
