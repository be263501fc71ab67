// Package search implements the batched equal-range search: given a
// sorted accessor and a batch of ascending query keys, it returns the
// [low, high) index range matching each key. Eight entry points combine
// two pivot strategies (binary, interpolation), two narrowing sources
// (plain scan, sparse range index) and two cross-query strategies (plain,
// cross-update, which lets an already-read bound narrow the next pending
// query since queries are processed in ascending key order).
//
// Each query's lower edge comes from an ordinary pivot search; its upper
// edge comes from reading one bounded window of records starting there
// (maxSeqReadElements caps its size) and, if that window turns out to be
// entirely equal to the key, galloping past it with
// ExponentialSearchUpperBound instead of reading window after window
// across a long run of duplicates. Cross-update additionally lets a later
// query reuse an earlier query's buffered window when its key still falls
// inside it, skipping the read entirely.
package search

// Accessor is the minimal random-access surface the search needs over the
// underlying sorted sequence.
type Accessor[T any] interface {
	At(i int) (T, error)
	Len() int
}

// Cmp orders two keys the same way as the underlying sequence: negative
// if a < b, zero if equal, positive if a > b.
type Cmp[K any] func(a, b K) int

// KeyOf extracts the ordering key from an element.
type KeyOf[T, K any] func(v T) K

// Result is the half-open index range matching one query key.
type Result struct {
	Low, High int
}

// MidFunc picks a candidate pivot index within [low, high) given the key
// bounds known to hold at those ends and the key being searched for. Go
// generics can't express this as a method on a strategy type satisfying a
// generic interface, so strategies are plain function values instead —
// see MidBinary and MidInterpolate.
type MidFunc[K any] func(low, high int, lowKey, highKey, target K) int
