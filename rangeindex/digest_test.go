package rangeindex

import (
	"encoding/binary"
	"testing"
)

func intToBytes(v int) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

func TestDigestMightContain(t *testing.T) {
	d := NewDigest[int](100, 0.01, intToBytes)
	for _, k := range []int{1, 2, 3, 100} {
		d.Add(k)
	}

	for _, k := range []int{1, 2, 3, 100} {
		if !d.MightContain(k) {
			t.Fatalf("MightContain(%d) = false, want true (key was added)", k)
		}
	}
}
