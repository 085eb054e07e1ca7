package heap

import "testing"

func TestPopReturnsHighestActivity(t *testing.T) {
	h := New()
	h.Grow(4)
	h.Insert(0, 1.0)
	h.Insert(1, 3.0)
	h.Insert(2, 2.0)

	got, ok := h.Pop()
	if !ok || got != 1 {
		t.Fatalf("Pop() = (%d, %v), want (1, true)", got, ok)
	}
	got, ok = h.Pop()
	if !ok || got != 2 {
		t.Fatalf("Pop() = (%d, %v), want (2, true)", got, ok)
	}
	got, ok = h.Pop()
	if !ok || got != 0 {
		t.Fatalf("Pop() = (%d, %v), want (0, true)", got, ok)
	}
	if !h.Empty() {
		t.Errorf("Empty() = false, want true")
	}
}

func TestRemoveSkipsOnPop(t *testing.T) {
	h := New()
	h.Grow(3)
	h.Insert(0, 1.0)
	h.Insert(1, 5.0)
	h.Insert(2, 3.0)

	h.Remove(1)
	if h.Contains(1) {
		t.Errorf("Contains(1) = true after Remove, want false")
	}

	got, ok := h.Pop()
	if !ok || got != 2 {
		t.Fatalf("Pop() = (%d, %v), want (2, true)", got, ok)
	}
}

func TestUpdateReordersHeap(t *testing.T) {
	h := New()
	h.Grow(2)
	h.Insert(0, 1.0)
	h.Insert(1, 2.0)

	h.Update(0, 10.0)
	got, ok := h.Pop()
	if !ok || got != 0 {
		t.Fatalf("Pop() after Update = (%d, %v), want (0, true)", got, ok)
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	h := New()
	h.Grow(2)
	h.Insert(0, 1.0)
	h.Insert(1, 2.0)

	h.Normalize(1e-100)
	if got := h.Activity(1); got >= 2.0 {
		t.Errorf("Activity(1) = %g, want it scaled down", got)
	}
	got, ok := h.Pop()
	if !ok || got != 1 {
		t.Fatalf("Pop() after Normalize = (%d, %v), want (1, true)", got, ok)
	}
}

func TestEmptyHeapPopFails(t *testing.T) {
	h := New()
	if _, ok := h.Pop(); ok {
		t.Errorf("Pop() on empty heap ok = true, want false")
	}
}
