package search

// lowerBound finds the first index i in [low, high) with
// cmp(keyOf(a[i]), target) >= 0, using mid to pick pivots.
func lowerBound[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], mid MidFunc[K], low, high int, lowKey, highKey, target K) (int, error) {
	for low < high {
		m := mid(low, high, lowKey, highKey, target)
		v, err := acc.At(m)
		if err != nil {
			return 0, err
		}
		k := keyOf(v)
		if cmp(k, target) < 0 {
			low = m + 1
			lowKey = k
		} else {
			high = m
			highKey = k
		}
	}
	return low, nil
}

// upperBound finds the first index i in [low, high) with
// cmp(keyOf(a[i]), target) > 0.
func upperBound[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], mid MidFunc[K], low, high int, lowKey, highKey, target K) (int, error) {
	for low < high {
		m := mid(low, high, lowKey, highKey, target)
		v, err := acc.At(m)
		if err != nil {
			return 0, err
		}
		k := keyOf(v)
		if cmp(k, target) <= 0 {
			low = m + 1
			lowKey = k
		} else {
			high = m
			highKey = k
		}
	}
	return low, nil
}

// boundaryKeys reads the keys at the very ends of [low, high) once, so
// the interpolation strategy always has real endpoint keys to work from
// even before any pivot has been read within the range.
func boundaryKeys[T, K any](acc Accessor[T], keyOf KeyOf[T, K], low, high int) (lowKey, highKey K, err error) {
	if low >= high {
		return lowKey, highKey, nil
	}
	lv, err := acc.At(low)
	if err != nil {
		return lowKey, highKey, err
	}
	hv, err := acc.At(high - 1)
	if err != nil {
		return lowKey, highKey, err
	}
	return keyOf(lv), keyOf(hv), nil
}

// seqWindow is a contiguous span of keys read once from the accessor and
// kept around so a later, ascending query can be answered straight out of
// memory instead of re-reading the same records.
type seqWindow[K any] struct {
	lo, hi int // positions [lo, hi) within the accessor the keys came from
	keys   []K
}

func readWindow[T, K any](acc Accessor[T], keyOf KeyOf[T, K], lo, hi int) (seqWindow[K], error) {
	keys := make([]K, hi-lo)
	for i := lo; i < hi; i++ {
		v, err := acc.At(i)
		if err != nil {
			return seqWindow[K]{}, err
		}
		keys[i-lo] = keyOf(v)
	}
	return seqWindow[K]{lo: lo, hi: hi, keys: keys}, nil
}

// contains reports whether target falls within the span of keys this
// window actually holds, i.e. whether it can be answered from this buffer
// without touching the accessor again.
func (w seqWindow[K]) contains(cmp Cmp[K], target K) bool {
	if len(w.keys) == 0 {
		return false
	}
	return cmp(w.keys[0], target) <= 0 && cmp(w.keys[len(w.keys)-1], target) >= 0
}

func keysLowerBound[K any](keys []K, cmp Cmp[K], target K) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if cmp(keys[m], target) < 0 {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

func keysUpperBound[K any](keys []K, cmp Cmp[K], target K) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if cmp(keys[m], target) <= 0 {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

// equalRangeOne answers a single query against acc restricted to
// [lo, hi). It finds the lower bound with the usual pivot search (mid),
// then resolves the upper bound by reading one sentinel-sized window of
// at most maxSeqReadElements records starting at that lower bound: if the
// window turns out to be entirely equal to target, the run continues past
// the window we just read, so the far edge is chased down with
// ExponentialSearchUpperBound instead of reading window after window; if
// the window straddles the edge, the edge is read directly out of it.
//
// carried, if non-nil, is the window a previous query in the same
// ascending batch already buffered. When target still falls inside it,
// the query is answered straight from that memory instead of touching acc
// at all. The window actually read (or reused) is returned so the next
// query can try the same trick.
func equalRangeOne[T, K any](
	acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], mid MidFunc[K],
	lo, hi int, lowKey, highKey, target K, maxSeqReadElements int,
	carried *seqWindow[K],
) (Result, *seqWindow[K], error) {
	if lo >= hi {
		return Result{lo, lo}, carried, nil
	}

	if carried != nil && carried.contains(cmp, target) {
		first, last := carried.keys[0], carried.keys[len(carried.keys)-1]
		if !(cmp(first, target) == 0 && cmp(last, target) == 0) {
			l := carried.lo + keysLowerBound(carried.keys, cmp, target)
			u := carried.lo + keysUpperBound(carried.keys, cmp, target)
			return Result{l, u}, carried, nil
		}
		// carried window is entirely target: its edges may reach past
		// what we buffered, so fall through and resolve properly.
	}

	l, err := lowerBound(acc, keyOf, cmp, mid, lo, hi, lowKey, highKey, target)
	if err != nil {
		return Result{}, carried, err
	}
	if l >= hi {
		return Result{l, l}, carried, nil
	}

	if maxSeqReadElements < 1 {
		maxSeqReadElements = 1
	}
	winHi := l + maxSeqReadElements
	if winHi > hi {
		winHi = hi
	}
	w, err := readWindow(acc, keyOf, l, winHi)
	if err != nil {
		return Result{}, carried, err
	}
	first, last := w.keys[0], w.keys[len(w.keys)-1]

	if cmp(first, target) > 0 {
		return Result{l, l}, &w, nil
	}
	if cmp(first, target) == 0 && cmp(last, target) == 0 {
		u, err := ExponentialSearchUpperBound(acc, keyOf, cmp, winHi-1, target)
		if err != nil {
			return Result{}, &w, err
		}
		return Result{l, u}, &w, nil
	}
	u := l + keysUpperBound(w.keys, cmp, target)
	return Result{l, u}, &w, nil
}

// equalRangeMultiple answers every query in keys (which must be supplied
// in ascending order) against acc restricted to [lo, hi). When
// crossUpdate is set, each query starts its search no earlier than the
// previous query's resolved upper bound, and reuses the previous query's
// buffered window when the new target still falls inside it — both valid
// because keys are ascending, so no later key can match anything before
// the prior key's range ends.
func equalRangeMultiple[T, K any](
	acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], mid MidFunc[K],
	lo, hi int, keys []K, maxSeqReadElements int, crossUpdate bool,
) ([]Result, error) {
	results := make([]Result, len(keys))
	floor := lo
	var carried *seqWindow[K]
	for i, key := range keys {
		searchLo := lo
		var w *seqWindow[K]
		if crossUpdate {
			searchLo = floor
			w = carried
		}
		if searchLo > hi {
			searchLo = hi
		}

		lowKey, highKey, err := boundaryKeys(acc, keyOf, searchLo, hi)
		if err != nil {
			return nil, err
		}

		res, nw, err := equalRangeOne(acc, keyOf, cmp, mid, searchLo, hi, lowKey, highKey, key, maxSeqReadElements, w)
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

// EqualRangeBin answers every query key against acc[0:acc.Len()) using
// plain binary-pivot search, independently per key. maxSeqReadElements
// bounds each sentinel window read while resolving a key's upper edge;
// config.Options.EqualRangeMaxRandomReadSize is the usual source for it.
func EqualRangeBin[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeMultiple(acc, keyOf, cmp, MidBinary[K], 0, acc.Len(), keys, maxSeqReadElements, false)
}

// EqualRangeBinCross is EqualRangeBin with cross-updates between
// successive (ascending) queries enabled.
func EqualRangeBinCross[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeMultiple(acc, keyOf, cmp, MidBinary[K], 0, acc.Len(), keys, maxSeqReadElements, true)
}

// EqualRangeInterp is EqualRangeBin using interpolated pivots instead of
// the arithmetic midpoint.
func EqualRangeInterp[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], toArithmetic func(K) float64, maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeMultiple(acc, keyOf, cmp, NewMidInterpolate[K](toArithmetic), 0, acc.Len(), keys, maxSeqReadElements, false)
}

// EqualRangeInterpCross is EqualRangeInterp with cross-updates enabled.
func EqualRangeInterpCross[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], toArithmetic func(K) float64, maxSeqReadElements int, keys []K) ([]Result, error) {
	return equalRangeMultiple(acc, keyOf, cmp, NewMidInterpolate[K](toArithmetic), 0, acc.Len(), keys, maxSeqReadElements, true)
}
