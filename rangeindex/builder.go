package rangeindex

// Builder accumulates Entry values incrementally as a sorted run is
// written, mirroring the original external-storage range-index builder's
// two-phase logic (original_source/External.h makeIndexImpl): a range
// unconditionally absorbs the whole initial run of equal keys it opens
// with — however long, so a run of duplicates is never split across two
// entries — then extends element by element through further distinct
// keys until maxNumEntriesInRange elements have been counted. It closes
// at the last key boundary it saw; any elements already read past that
// boundary belong to the next key by construction, so they carry forward
// as the start of the next range instead of being re-read.
type Builder[K any] struct {
	cmp                  func(a, b K) int
	maxNumEntriesInRange int
	entries              []Entry[K]

	open     bool
	startIdx int
	startKey K
	offset   int
	lastKey  K
	inSpan   bool // still in the current range's uncapped initial equal-key run

	haveSplit   bool
	splitIdx    int
	splitKey    K
	splitEndKey K
}

// NewBuilder returns a Builder that closes a range after counting
// maxNumEntriesInRange elements into it, except a range is never closed
// mid-duplicate-run: a value repeating past that bound simply keeps the
// range open until the run ends.
func NewBuilder[K any](cmp func(a, b K) int, maxNumEntriesInRange int) *Builder[K] {
	if maxNumEntriesInRange < 1 {
		maxNumEntriesInRange = 1
	}
	return &Builder[K]{cmp: cmp, maxNumEntriesInRange: maxNumEntriesInRange}
}

// Append records that the element at position idx has the given key. idx
// values must be supplied in increasing order, matching the order the run
// is written in.
func (b *Builder[K]) Append(idx int, key K) {
	if !b.open {
		b.open = true
		b.startIdx = idx
		b.startKey = key
		b.lastKey = key
		b.offset = 1
		b.inSpan = true
		b.haveSplit = false
		return
	}

	if b.inSpan {
		if b.cmp(key, b.lastKey) == 0 {
			b.lastKey = key
			b.offset++
			return
		}
		// First element of a new key: the initial uncapped run is over,
		// so this becomes the candidate boundary for the next range.
		b.inSpan = false
		b.haveSplit = true
		b.splitIdx, b.splitKey, b.splitEndKey = idx, key, b.lastKey
		if b.offset >= b.maxNumEntriesInRange {
			b.closeAndCarry(key)
			return
		}
		b.lastKey = key
		b.offset++
		return
	}

	if b.cmp(key, b.lastKey) != 0 {
		b.haveSplit = true
		b.splitIdx, b.splitKey, b.splitEndKey = idx, key, b.lastKey
	}
	if b.offset >= b.maxNumEntriesInRange {
		b.closeAndCarry(key)
		return
	}
	b.lastKey = key
	b.offset++
}

// closeAndCarry closes the open range at its last recorded key boundary
// and opens the next one there. Elements already counted past that
// boundary share the new range's key by construction (no boundary was
// seen between them), so they carry forward as its own uncapped initial
// run instead of being re-counted from zero.
func (b *Builder[K]) closeAndCarry(key K) {
	b.entries = append(b.entries, Entry[K]{
		Low: b.startIdx, High: b.splitIdx,
		LowKey: b.startKey, HighKey: b.splitEndKey,
	})
	carried := b.offset - (b.splitIdx - b.startIdx)
	b.startIdx = b.splitIdx
	b.startKey = b.splitKey
	b.lastKey = key
	b.offset = carried + 1
	b.inSpan = true
	b.haveSplit = false
}

// Finish closes any open range and returns the built Index.
func (b *Builder[K]) Finish() *Index[K] {
	if b.open {
		b.entries = append(b.entries, Entry[K]{
			Low: b.startIdx, High: b.startIdx + b.offset,
			LowKey: b.startKey, HighKey: b.lastKey,
		})
		b.open = false
	}
	return New(b.entries, b.cmp)
}
