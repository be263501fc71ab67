package util

import (
	"reflect"
	"testing"
)

func TestReversibleSortRoundTrip(t *testing.T) {
	data := []int{5, 3, 4, 1, 2}
	original := append([]int(nil), data...)

	u := ReversibleSort(data, func(a, b int) bool { return a < b })
	if !reflect.DeepEqual(data, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("sorted = %v", data)
	}

	ApplyGeneric(u, data)
	if !reflect.DeepEqual(data, original) {
		t.Fatalf("unsorted = %v, want %v", data, original)
	}
}

func TestReversibleZipSort(t *testing.T) {
	keys := []int{3, 1, 2}
	values := []string{"c", "a", "b"}

	u := ReversibleZipSort(keys, values, func(a, b int) bool { return a < b })
	if !reflect.DeepEqual(keys, []int{1, 2, 3}) {
		t.Fatalf("keys = %v", keys)
	}
	if !reflect.DeepEqual(values, []string{"a", "b", "c"}) {
		t.Fatalf("values = %v", values)
	}

	ApplyGeneric(u, keys)
	ApplyGeneric(u, values)
	if !reflect.DeepEqual(keys, []int{3, 1, 2}) {
		t.Fatalf("restored keys = %v", keys)
	}
	if !reflect.DeepEqual(values, []string{"c", "a", "b"}) {
		t.Fatalf("restored values = %v", values)
	}
}
