package util

import "sort"

// Unsorter restores a slice that was sorted alongside the permutation
// captured by ReversibleSort back to its original order. Use ApplyGeneric
// to un-permute any slice sorted together under that permutation.
type Unsorter struct {
	originalIndices []int
}

func sortPermutation(n int, less func(i, j int) bool) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return less(perm[i], perm[j])
	})
	return perm
}

// applyPermutationInPlaceGeneric reorders vec according to perm, where
// perm[i] names the original index that should now occupy position i.
// It follows permutation cycles so every element moves exactly once.
func applyPermutationInPlaceGeneric[T any](vec []T, perm []int) {
	done := make([]bool, len(perm))
	for i := range perm {
		if done[i] {
			continue
		}
		j := i
		tmp := vec[i]
		for !done[j] {
			done[j] = true
			next := perm[j]
			if next == i {
				vec[j] = tmp
			} else {
				vec[j] = vec[next]
			}
			j = next
		}
	}
}

// ReversibleSort sorts data in place using less and returns an Unsorter
// that can restore the original order later — useful when several slices
// must be zip-sorted by one key and then independently un-sorted.
func ReversibleSort[T any](data []T, less func(a, b T) bool) Unsorter {
	perm := sortPermutation(len(data), func(i, j int) bool { return less(data[i], data[j]) })
	applyPermutationInPlaceGeneric(data, perm)

	// invert perm so ApplyGeneric can use the same cycle-following routine
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return Unsorter{originalIndices: inv}
}

// ReversibleZipSort sorts keys and values together by keys' order and
// returns an Unsorter that restores both slices' original order.
func ReversibleZipSort[K any, V any](keys []K, values []V, less func(a, b K) bool) Unsorter {
	perm := sortPermutation(len(keys), func(i, j int) bool { return less(keys[i], keys[j]) })
	applyPermutationInPlaceGeneric(keys, perm)
	applyPermutationInPlaceGeneric(values, perm)

	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return Unsorter{originalIndices: inv}
}

// ApplyGeneric restores any slice (not just []int) to the order it had
// before the ReversibleSort/ReversibleZipSort call that produced u.
func ApplyGeneric[T any](u Unsorter, data []T) {
	applyPermutationInPlaceGeneric(data, u.originalIndices)
}
