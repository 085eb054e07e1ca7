// Package heap implements the activity-ordered max-heap the decision
// heuristic and variable bumping consume, as an adapter over
// github.com/rhartert/yagh's priority map (the same dependency the
// teacher's VarOrder wraps).
package heap

import "github.com/rhartert/yagh"

// ActivityHeap is a max-heap over densely numbered, non-negative integer
// keys ordered by a float64 activity. Duplicate keys are forbidden: a key
// already present must be removed (or popped) before being inserted again.
//
// yagh.IntMap is a min-heap, so every priority handed to it is the negated
// activity; this mirrors the teacher's own VarOrder.
type ActivityHeap struct {
	order      *yagh.IntMap[float64]
	activities []float64
	present    []bool
	live       int
}

// New returns an empty ActivityHeap.
func New() *ActivityHeap {
	return &ActivityHeap{order: yagh.New[float64](0)}
}

// Grow extends the heap's key space by n, so keys in
// [old size, old size+n) become valid. New keys start absent.
func (h *ActivityHeap) Grow(n int) {
	h.order.GrowBy(n)
	for i := 0; i < n; i++ {
		h.activities = append(h.activities, 0)
		h.present = append(h.present, false)
	}
}

// Insert adds key with the given activity. The key must not already be
// present.
func (h *ActivityHeap) Insert(key int, activity float64) {
	h.activities[key] = activity
	h.present[key] = true
	h.live++
	h.order.Put(key, -activity)
}

// Remove takes key out of the set of candidates. It is a no-op if the key
// is already absent.
func (h *ActivityHeap) Remove(key int) {
	if h.present[key] {
		h.present[key] = false
		h.live--
	}
}

// Contains reports whether key is currently a candidate.
func (h *ActivityHeap) Contains(key int) bool {
	return h.present[key]
}

// Increase raises key's activity. The caller must ensure the new activity
// is not lower than the current one; Update should be used otherwise.
func (h *ActivityHeap) Increase(key int, activity float64) {
	h.Update(key, activity)
}

// Update sets key's activity to an arbitrary new value, reordering the
// heap as needed.
func (h *ActivityHeap) Update(key int, activity float64) {
	h.activities[key] = activity
	if h.present[key] {
		h.order.Put(key, -activity)
	}
}

// Normalize rescales every activity (present or not) by factor, preserving
// relative order. Used when activities approach float64 overflow.
func (h *ActivityHeap) Normalize(factor float64) {
	for k := range h.activities {
		h.activities[k] *= factor
		if h.present[k] {
			h.order.Put(k, -h.activities[k])
		}
	}
}

// Empty reports whether there are no present keys left.
func (h *ActivityHeap) Empty() bool {
	return h.live == 0
}

// Pop removes and returns the present key with the highest activity.
func (h *ActivityHeap) Pop() (int, bool) {
	for {
		next, ok := h.order.Pop()
		if !ok {
			return 0, false
		}
		if !h.present[next.Elem] {
			continue
		}
		h.present[next.Elem] = false
		h.live--
		return next.Elem, true
	}
}

// Top returns the present key with the highest activity without removing
// it.
func (h *ActivityHeap) Top() (int, bool) {
	key, ok := h.Pop()
	if !ok {
		return 0, false
	}
	h.Insert(key, h.activities[key])
	return key, true
}

// Activity returns key's current activity, whether present or not.
func (h *ActivityHeap) Activity(key int) float64 {
	return h.activities[key]
}
