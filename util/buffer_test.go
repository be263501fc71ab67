package util

import "testing"

func TestDoubleBufferSwap(t *testing.T) {
	db := NewDoubleBuffer[int](4)
	copy(db.Data(), []int{1, 2, 3, 4})
	copy(db.BackData(), []int{9, 9, 9, 9})

	db.Swap()

	if db.Data()[0] != 9 {
		t.Fatalf("after swap, front[0] = %d, want 9", db.Data()[0])
	}
	if db.BackData()[0] != 1 {
		t.Fatalf("after swap, back[0] = %d, want 1", db.BackData()[0])
	}
}

func TestFixedVectorPushAndOverflow(t *testing.T) {
	v := NewFixedVector[int](2)
	v.Push(1)
	v.Push(2)
	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic pushing past capacity")
		}
	}()
	v.Push(3)
}
