package search

// ExponentialSearchUpperBound finds the first index >= start whose key is
// greater than target, doubling its probe distance each step instead of
// advancing one element at a time. It exists for exactly one caller: a
// fixed-size window read that turned out to be entirely equal to target,
// meaning the true upper edge lies somewhere past the window we already
// read. Galloping outward from there finds it in O(log d) probes, where d
// is the distance to the edge, instead of reading window after window
// across a long run of duplicate keys.
func ExponentialSearchUpperBound[T, K any](acc Accessor[T], keyOf KeyOf[T, K], cmp Cmp[K], start int, target K) (int, error) {
	n := acc.Len()
	if start >= n {
		return n, nil
	}
	step := 1
	low, high := start, n
	for {
		idx := start + step
		if idx >= n {
			high = n
			break
		}
		v, err := acc.At(idx)
		if err != nil {
			return 0, err
		}
		if cmp(keyOf(v), target) > 0 {
			high = idx + 1
			break
		}
		low = idx + 1
		step *= 2
	}
	return upperBound(acc, keyOf, cmp, MidBinary[K], low, high, target, target, target)
}
