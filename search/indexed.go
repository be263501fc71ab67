package search

import "github.com/Priyanshu23/posdbgo/rangeindex"

// EqualRangeBinIndexed first narrows each query to the candidate window
// named by idx.EqualRange(key) before resolving it there the same way the
// unindexed search does: a pivot search for the lower edge, then at most
// one sentinel window read (bounded by maxSeqReadElements) for the upper
// edge, falling back to ExponentialSearchUpperBound when that window is
// entirely equal to the key.
func EqualRangeBinIndexed[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], idx *rangeindex.Index[K], maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeIndexed(acc, keyOf, cmp, MidBinary[K], idx, keys, maxSeqReadElements, false)
}

// EqualRangeBinIndexedCross is EqualRangeBinIndexed with cross-updates
// enabled within each indexed window.
func EqualRangeBinIndexedCross[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], idx *rangeindex.Index[K], maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeIndexed(acc, keyOf, cmp, MidBinary[K], idx, keys, maxSeqReadElements, true)
}

// EqualRangeInterpIndexed is EqualRangeBinIndexed using interpolated
// pivots inside the narrowed window.
func EqualRangeInterpIndexed[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], toArithmetic func(K) float64, idx *rangeindex.Index[K], maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeIndexed(acc, keyOf, cmp, NewMidInterpolate[K](toArithmetic), idx, keys, maxSeqReadElements, false)
}

// EqualRangeInterpIndexedCross is EqualRangeInterpIndexed with
// cross-updates enabled.
func EqualRangeInterpIndexedCross[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], toArithmetic func(K) float64, idx *rangeindex.Index[K], maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeIndexed(acc, keyOf, cmp, NewMidInterpolate[K](toArithmetic), idx, keys, maxSeqReadElements, true)
}

func equalRangeIndexed[T, K any](
	acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], mid MidFunc[K],
	idx *rangeindex.Index[K], keys []K, maxSeqReadElements int, crossUpdate bool,
) ([]Result, error) {
	results := make([]Result, len(keys))
	floor := 0
	var carried *seqWindow[K]
	for i, key := range keys {
		lo, hi := idx.EqualRange(key)
		var w *seqWindow[K]
		if crossUpdate {
			if floor > lo {
				lo = floor
			}
			w = carried
		}
		if lo > hi {
			lo = hi
		}

		lowKey, highKey, err := boundaryKeys(acc, keyOf, lo, hi)
		if err != nil {
			return nil, err
		}

		res, nw, err := equalRangeOne(acc, keyOf, cmp, mid, lo, hi, lowKey, highKey, key, maxSeqReadElements, w)
		if err != nil {
			return nil, err
		}
		results[i] = res
		if crossUpdate {
			floor = res.High
			carried = nw
		}
	}
	return results, nil
}
