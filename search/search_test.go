package search

import (
	"testing"

	"github.com/Priyanshu23/posdbgo/rangeindex"
)

type intSliceAccessor struct {
	data []int
}

func (a intSliceAccessor) At(i int) (int, error) { return a.data[i], nil }
func (a intSliceAccessor) Len() int              { return len(a.data) }

func keyOfInt(v int) int { return v }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

var sampleData = []int{1, 1, 1, 2, 3, 3, 4, 5, 5, 5, 5, 5, 6}

func TestEqualRangeBinMatchesSeedScenario(t *testing.T) {
	acc := intSliceAccessor{data: sampleData}
	results, err := EqualRangeBin[int, int](acc, keyOfInt, cmpInt, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBin: %v", err)
	}

	want := []Result{{0, 3}, {7, 12}, {13, 13}}
	for i, w := range want {
		if results[i] != w {
			t.Fatalf("result[%d] = %+v, want %+v", i, results[i], w)
		}
	}
}

func TestEqualRangeBinCrossMatchesPlain(t *testing.T) {
	acc := intSliceAccessor{data: sampleData}
	plain, err := EqualRangeBin[int, int](acc, keyOfInt, cmpInt, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBin: %v", err)
	}
	cross, err := EqualRangeBinCross[int, int](acc, keyOfInt, cmpInt, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBinCross: %v", err)
	}
	for i := range plain {
		if plain[i] != cross[i] {
			t.Fatalf("cross result[%d] = %+v, plain = %+v", i, cross[i], plain[i])
		}
	}
}

func TestEqualRangeInterpMatchesBinary(t *testing.T) {
	acc := intSliceAccessor{data: sampleData}
	bin, err := EqualRangeBin[int, int](acc, keyOfInt, cmpInt, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBin: %v", err)
	}
	interp, err := EqualRangeInterp[int, int](acc, keyOfInt, cmpInt, func(v int) float64 { return float64(v) }, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeInterp: %v", err)
	}
	for i := range bin {
		if bin[i] != interp[i] {
			t.Fatalf("interp result[%d] = %+v, binary = %+v", i, interp[i], bin[i])
		}
	}
}

func TestEqualRangeIndexedMatchesPlain(t *testing.T) {
	acc := intSliceAccessor{data: sampleData}

	b := rangeindex.NewBuilder(cmpInt, 3)
	for i, k := range sampleData {
		b.Append(i, k)
	}
	idx := b.Finish()

	plain, err := EqualRangeBin[int, int](acc, keyOfInt, cmpInt, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBin: %v", err)
	}
	indexed, err := EqualRangeBinIndexed[int, int](acc, keyOfInt, cmpInt, idx, 4, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBinIndexed: %v", err)
	}
	for i := range plain {
		if plain[i] != indexed[i] {
			t.Fatalf("indexed result[%d] = %+v, plain = %+v", i, indexed[i], plain[i])
		}
	}
}

// TestEqualRangeBinForcesExponentialFallback uses a window of size 1, so
// the run of five 5s can never fit in a single sentinel window read —
// every result must still come out exactly right, with the upper edge
// found via ExponentialSearchUpperBound instead of a window that happens
// to reach past the run.
func TestEqualRangeBinForcesExponentialFallback(t *testing.T) {
	acc := intSliceAccessor{data: sampleData}
	results, err := EqualRangeBin[int, int](acc, keyOfInt, cmpInt, 1, []int{1, 5, 9})
	if err != nil {
		t.Fatalf("EqualRangeBin: %v", err)
	}
	want := []Result{{0, 3}, {7, 12}, {13, 13}}
	for i, w := range want {
		if results[i] != w {
			t.Fatalf("result[%d] = %+v, want %+v", i, results[i], w)
		}
	}
}

// TestEqualRangeBinCrossReusesBufferedWindow checks that cross-update
// still resolves correctly when two adjacent queries land inside the
// same buffered window, regardless of window size.
func TestEqualRangeBinCrossReusesBufferedWindow(t *testing.T) {
	acc := intSliceAccessor{data: sampleData}
	results, err := EqualRangeBinCross[int, int](acc, keyOfInt, cmpInt, 6, []int{3, 4})
	if err != nil {
		t.Fatalf("EqualRangeBinCross: %v", err)
	}
	want := []Result{{4, 6}, {6, 7}}
	for i, w := range want {
		if results[i] != w {
			t.Fatalf("result[%d] = %+v, want %+v", i, results[i], w)
		}
	}
}
