// Package rangeindex implements the sparse range index: a compact summary
// of a sorted run that maps a contiguous index range [Low, High) to the
// [LowKey, HighKey] bounds of the keys stored there, letting a search
// narrow a large file down to a small candidate window before doing any
// real I/O.
package rangeindex

// Entry summarizes one contiguous range of a sorted sequence: elements at
// positions [Low, High) have keys between LowKey and HighKey inclusive.
type Entry[K any] struct {
	Low, High        int
	LowKey, HighKey  K
}

// Index is an immutable, sorted list of Entry.
type Index[K any] struct {
	entries []Entry[K]
	cmp     func(a, b K) int
}

// New wraps a slice of entries already built by Builder.Finish, alongside
// the comparator used to order keys.
func New[K any](entries []Entry[K], cmp func(a, b K) int) *Index[K] {
	return &Index[K]{entries: entries, cmp: cmp}
}

// Entries returns the underlying entry slice.
func (ix *Index[K]) Entries() []Entry[K] { return ix.entries }

// Len returns the number of entries.
func (ix *Index[K]) Len() int { return len(ix.entries) }

// EqualRange narrows [low,high) to the index-range entry whose key bounds
// could contain key, using binary search over the index itself (which is
// tiny compared to the underlying run). If key falls before the first or
// after the last entry, the corresponding half-open bound collapses to
// the nearest edge. The "end" bound is the last entry's High, which is
// already one past the last element the index covers.
func (ix *Index[K]) EqualRange(key K) (low, high int) {
	n := len(ix.entries)
	if n == 0 {
		return 0, 0
	}

	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if ix.cmp(ix.entries[mid].HighKey, key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	startEntry := lo

	lo2, hi2 := 0, n
	for lo2 < hi2 {
		mid := (lo2 + hi2) / 2
		if ix.cmp(ix.entries[mid].LowKey, key) <= 0 {
			lo2 = mid + 1
		} else {
			hi2 = mid
		}
	}
	endEntry := lo2

	if startEntry >= n {
		end := ix.entries[n-1].High
		return end, end
	}
	if endEntry == 0 {
		return ix.entries[0].Low, ix.entries[0].Low
	}

	low = ix.entries[startEntry].Low
	high = ix.entries[endEntry-1].High
	if low > high {
		return low, low
	}
	return low, high
}
