package merge

import (
	"container/heap"

	"github.com/bits-and-blooms/bitset"
)

// PriorityQueueMergeThreshold is the fan-in at or above which the k-way
// merge switches from a linear minimum scan to a heap: below it, a linear
// scan over a handful of runs is cheaper than heap bookkeeping.
const PriorityQueueMergeThreshold = 24

// Source pulls values, in already-sorted order, from one run.
type Source[T any] interface {
	// Next returns the next value and true, or the zero value and false
	// once the run is exhausted.
	Next() (T, bool, error)
}

// SliceSource adapts an in-memory sorted slice to Source.
type SliceSource[T any] struct {
	data []T
	pos  int
}

// NewSliceSource wraps data as a Source.
func NewSliceSource[T any](data []T) *SliceSource[T] {
	return &SliceSource[T]{data: data}
}

func (s *SliceSource[T]) Next() (T, bool, error) {
	var zero T
	if s.pos >= len(s.data) {
		return zero, false, nil
	}
	v := s.data[s.pos]
	s.pos++
	return v, true, nil
}

// Progress reports how much of a merge's estimated total work has
// completed, in input bytes/elements (units are caller-defined).
type Progress struct {
	Done, Total int64
}

// Ratio returns Done/Total, or 0 if Total is 0.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// Callbacks are passed to a multi-pass merge. Merge invokes OnPassFinished
// after each pass; it never invokes OnProgress.
type Callbacks struct {
	OnProgress     func(Progress)
	OnPassFinished func(passID int)
}

type heapItem[T any] struct {
	value T
	runIdx int
}

type mergeHeap[T any] struct {
	items []heapItem[T]
	less  func(a, b T) bool
}

func (h *mergeHeap[T]) Len() int { return len(h.items) }
func (h *mergeHeap[T]) Less(i, j int) bool {
	if h.less(h.items[i].value, h.items[j].value) {
		return true
	}
	if h.less(h.items[j].value, h.items[i].value) {
		return false
	}
	// stable: earlier-registered run wins ties
	return h.items[i].runIdx < h.items[j].runIdx
}
func (h *mergeHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *mergeHeap[T]) Push(x any)    { h.items = append(h.items, x.(heapItem[T])) }
func (h *mergeHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

// MergeForEach performs a single-pass stable k-way merge of sources,
// calling sink with each value in overall sorted order (ties broken by
// source index, lowest first — the earliest-registered run wins, keeping
// the merge stable). Switches between a linear minimum scan and a
// container/heap priority queue at PriorityQueueMergeThreshold, tracking
// which sources are still live with a bitset instead of a hand-rolled
// bool slice.
func MergeForEach[T any](sources []Source[T], less func(a, b T) bool, sink func(T) error) error {
	n := len(sources)
	live := bitset.New(uint(n))
	current := make([]T, n)
	hasCurrent := make([]bool, n)

	fill := func(i int) error {
		v, ok, err := sources[i].Next()
		if err != nil {
			return err
		}
		if !ok {
			live.Clear(uint(i))
			hasCurrent[i] = false
			return nil
		}
		current[i] = v
		hasCurrent[i] = true
		return nil
	}

	for i := 0; i < n; i++ {
		live.Set(uint(i))
		if err := fill(i); err != nil {
			return err
		}
	}

	if n >= PriorityQueueMergeThreshold {
		return mergeWithHeap(current, hasCurrent, live, less, sink, fill)
	}
	return mergeLinear(current, hasCurrent, live, less, sink, fill)
}

// mergeLinear repeatedly scans the live runs' current values for the
// minimum — cheap when there are only a few runs, since it avoids heap
// bookkeeping entirely.
func mergeLinear[T any](
	current []T, hasCurrent []bool, live *bitset.BitSet,
	less func(a, b T) bool, sink func(T) error, fill func(int) error,
) error {
	for live.Count() > 0 {
		best := -1
		for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
			idx := int(i)
			if !hasCurrent[idx] {
				continue
			}
			if best == -1 || less(current[idx], current[best]) {
				best = idx
			}
		}
		if best == -1 {
			break
		}
		if err := sink(current[best]); err != nil {
			return err
		}
		if err := fill(best); err != nil {
			return err
		}
	}
	return nil
}

// mergeWithHeap drives the same merge via a container/heap min-heap,
// amortizing the per-step cost to O(log k) once the fan-in is large
// enough that a linear scan would dominate.
func mergeWithHeap[T any](
	current []T, hasCurrent []bool, live *bitset.BitSet,
	less func(a, b T) bool, sink func(T) error, fill func(int) error,
) error {
	h := &mergeHeap[T]{less: less}
	heap.Init(h)
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		idx := int(i)
		if hasCurrent[idx] {
			heap.Push(h, heapItem[T]{value: current[idx], runIdx: idx})
		}
	}

	for h.Len() > 0 {
		top := heap.Pop(h).(heapItem[T])
		if err := sink(top.value); err != nil {
			return err
		}
		if err := fill(top.runIdx); err != nil {
			return err
		}
		if hasCurrent[top.runIdx] {
			heap.Push(h, heapItem[T]{value: current[top.runIdx], runIdx: top.runIdx})
		}
	}
	return nil
}
