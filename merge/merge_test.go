package merge

import (
	"reflect"
	"testing"
)

func lessInt(a, b int) bool { return a < b }

func TestMergeForEachStableThreeRuns(t *testing.T) {
	runs := []Source[int]{
		NewSliceSource([]int{1, 3, 5}),
		NewSliceSource([]int{2, 4}),
		NewSliceSource([]int{2, 6, 7}),
	}

	var got []int
	err := MergeForEach(runs, lessInt, func(v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("MergeForEach: %v", err)
	}

	want := []int{1, 2, 2, 3, 4, 5, 6, 7}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMergeForEachLargeHeapPath(t *testing.T) {
	runs := make([]Source[int], 0, PriorityQueueMergeThreshold+5)
	for i := 0; i < PriorityQueueMergeThreshold+5; i++ {
		runs = append(runs, NewSliceSource([]int{i, i + 1000}))
	}

	var got []int
	err := MergeForEach(runs, lessInt, func(v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("MergeForEach: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("output not sorted at %d: %v", i, got)
		}
	}
}

func TestMultiPassMergeFanInTwo(t *testing.T) {
	sources := []Source[int]{
		NewSliceSource([]int{1, 5, 9}),
		NewSliceSource([]int{2, 6}),
		NewSliceSource([]int{3, 7, 10}),
		NewSliceSource([]int{4, 8}),
	}

	var passes []int
	var got []int
	cb := Callbacks{OnPassFinished: func(passID int) { passes = append(passes, passID) }}
	err := Merge(sources, lessInt, 2, cb, func(v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(passes) != 2 {
		t.Fatalf("expected 2 passes for 4 runs at fan-in 2, got %d", len(passes))
	}
}

func TestMakePlanAlternatesDirectories(t *testing.T) {
	plan := MakePlan(100, "a", "b", 4)
	if len(plan.Passes) == 0 {
		t.Fatal("expected at least one pass")
	}
	for i, p := range plan.Passes {
		if i == 0 {
			continue
		}
		prev := plan.Passes[i-1]
		if p.ReadDir != prev.WriteDir {
			t.Fatalf("pass %d does not read from previous pass's write dir", i)
		}
	}

	// extrapolate beyond the planned passes
	extra := plan.DirsForPass(len(plan.Passes))
	last := plan.Passes[len(plan.Passes)-1]
	if extra.ReadDir != last.WriteDir {
		t.Fatalf("extrapolated pass does not continue alternation")
	}
}
