package span

import (
	"encoding/binary"
	"io"
	"testing"
)

// uint64Codec is a minimal Codec[uint64] used only by these tests.
type uint64Codec struct{}

func (uint64Codec) Size() int { return 8 }
func (uint64Codec) Encode(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf, v)
}
func (uint64Codec) Decode(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}

// memFile is an in-memory fake standing in for *extfile.ImmutableBinaryFile
// / *extfile.BinaryOutputFile in tests.
type memFile struct {
	data []byte
}

func (m *memFile) ReadAt(buf []byte, offset int64) error {
	end := offset + int64(len(buf))
	if end > int64(len(m.data)) {
		n := copy(buf, m.data[offset:])
		_ = n
		return io.ErrUnexpectedEOF
	}
	copy(buf, m.data[offset:end])
	return nil
}

func (m *memFile) Append(buf []byte) error {
	m.data = append(m.data, buf...)
	return nil
}

func (m *memFile) Flush() error { return nil }

func TestImmutableAtAndReadRange(t *testing.T) {
	mf := &memFile{}
	codec := uint64Codec{}
	for _, v := range []uint64{10, 20, 30, 40} {
		buf := make([]byte, 8)
		codec.Encode(buf, v)
		mf.data = append(mf.data, buf...)
	}

	s := &Immutable[uint64]{file: mf, codec: codec, begin: 0, end: int64(len(mf.data))}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}

	v, err := s.At(2)
	if err != nil || v != 30 {
		t.Fatalf("At(2) = %d, %v, want 30, nil", v, err)
	}

	vs, err := s.ReadRange(1, 3)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if len(vs) != 2 || vs[0] != 20 || vs[1] != 30 {
		t.Fatalf("ReadRange(1,3) = %v", vs)
	}
}

func TestSequentialIteratorWalksAllElements(t *testing.T) {
	mf := &memFile{}
	codec := uint64Codec{}
	want := []uint64{1, 2, 3, 4, 5, 6, 7}
	for _, v := range want {
		buf := make([]byte, 8)
		codec.Encode(buf, v)
		mf.data = append(mf.data, buf...)
	}

	s := &Immutable[uint64]{file: mf, codec: codec, begin: 0, end: int64(len(mf.data))}
	it, err := NewSequentialIterator(s, 3)
	if err != nil {
		t.Fatalf("NewSequentialIterator: %v", err)
	}

	var got []uint64
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, v)
	}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRandomAccessIteratorCachesLastIndex(t *testing.T) {
	mf := &memFile{}
	codec := uint64Codec{}
	for _, v := range []uint64{100, 200, 300} {
		buf := make([]byte, 8)
		codec.Encode(buf, v)
		mf.data = append(mf.data, buf...)
	}
	s := &Immutable[uint64]{file: mf, codec: codec, begin: 0, end: int64(len(mf.data))}
	it := NewRandomAccessIterator(s)

	v, err := it.At(1)
	if err != nil || v != 200 {
		t.Fatalf("At(1) = %d, %v", v, err)
	}
	v, err = it.At(1)
	if err != nil || v != 200 {
		t.Fatalf("cached At(1) = %d, %v", v, err)
	}
}

func TestBackInserterBuffersAndFlushes(t *testing.T) {
	mf := &memFile{}
	bi := NewBackInserter[uint64](mf, uint64Codec{}, 2)

	for _, v := range []uint64{1, 2, 3} {
		if err := bi.Push(v); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if err := bi.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if bi.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", bi.Count())
	}
	if len(mf.data) != 3*8 {
		t.Fatalf("flushed %d bytes, want 24", len(mf.data))
	}

	codec := uint64Codec{}
	for i, want := range []uint64{1, 2, 3} {
		got := codec.Decode(mf.data[i*8 : i*8+8])
		if got != want {
			t.Fatalf("value[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestBackInserterDirectAppendOversizedBatch(t *testing.T) {
	mf := &memFile{}
	bi := NewBackInserter[uint64](mf, uint64Codec{}, 1)

	if err := bi.Append([]uint64{1, 2, 3, 4}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if bi.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", bi.Count())
	}
	if len(mf.data) != 4*8 {
		t.Fatalf("wrote %d bytes directly, want 32", len(mf.data))
	}
}
