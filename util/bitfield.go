package util

import "fmt"

// BitSpan describes a contiguous, non-overlapping slice of bits within a
// packed unsigned word: bits [Shift, Shift+Width) counted from the least
// significant bit.
type BitSpan struct {
	Shift uint
	Width uint
}

func (s BitSpan) mask() uint64 {
	if s.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1)<<s.Width - 1) << s.Shift
}

// PackedInts packs several BitSpan-described fields into one uint64. The
// spans must not overlap; NewPackedInts panics if they do (a debug-time
// check, compiled out under the posdb_fast build tag in release builds —
// see overlap_checked.go / overlap_unchecked.go).
type PackedInts struct {
	spans []BitSpan
	value uint64
}

// NewPackedInts validates that the given spans are pairwise non-overlapping
// and returns a zero-valued packed word described by them.
func NewPackedInts(spans ...BitSpan) *PackedInts {
	checkNonOverlapping(spans)
	return &PackedInts{spans: spans}
}

func checkNonOverlappingImpl(spans []BitSpan) {
	var seen uint64
	for i, s := range spans {
		m := s.mask()
		if seen&m != 0 {
			panic(fmt.Sprintf("util: BitSpan %d overlaps a previous span", i))
		}
		seen |= m
	}
}

// Get returns the value stored in the field described by spans[i].
func (p *PackedInts) Get(i int) uint64 {
	s := p.spans[i]
	return (p.value & s.mask()) >> s.Shift
}

// Set stores v (masked to Width bits) into the field described by spans[i].
func (p *PackedInts) Set(i int, v uint64) {
	s := p.spans[i]
	p.value = (p.value &^ s.mask()) | ((v << s.Shift) & s.mask())
}

// Raw returns the full packed word.
func (p *PackedInts) Raw() uint64 { return p.value }

// SetRaw overwrites the full packed word.
func (p *PackedInts) SetRaw(v uint64) { p.value = v }
