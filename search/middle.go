package search

// MidBinary is the standard textbook binary-search pivot: the arithmetic
// midpoint of the index range, ignoring key values entirely.
func MidBinary[K any](low, high int, _, _, _ K) int {
	return low + (high-low)/2
}

// NewMidInterpolate returns a MidFunc that picks a pivot by linearly
// interpolating target's position between lowKey and highKey (converted
// to a common arithmetic scale via toArithmetic) — the same role the
// original design's boxed Interpolate<ToArithmeticT, ToSizeT> functors
// play, expressed here as a closure instead of a type-level strategy.
func NewMidInterpolate[K any](toArithmetic func(K) float64) MidFunc[K] {
	return func(low, high int, lowKey, highKey, target K) int {
		return MidInterpolate(low, high, lowKey, highKey, target, toArithmetic)
	}
}

// MidInterpolate computes the interpolated pivot index for a target key
// known to lie within [lowKey, highKey] at positions [low, high].
func MidInterpolate[K any](low, high int, lowKey, highKey, target K, toArithmetic func(K) float64) int {
	if high <= low {
		return low
	}
	lo := toArithmetic(lowKey)
	hi := toArithmetic(highKey)
	t := toArithmetic(target)
	if hi == lo {
		return low
	}
	frac := (t - lo) / (hi - lo)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	offset := int(frac * float64(high-low))
	mid := low + offset
	if mid >= high {
		mid = high - 1
	}
	if mid < low {
		mid = low
	}
	return mid
}
