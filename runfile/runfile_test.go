package runfile

import (
	"encoding/binary"
	"path/filepath"
	"testing"
)

type kv struct {
	k, v int64
}

func (r kv) Key() int64 { return r.k }

type kvCodec struct{}

func (kvCodec) Size() int { return 16 }
func (kvCodec) Encode(buf []byte, r kv) {
	binary.LittleEndian.PutUint64(buf[0:], uint64(r.k))
	binary.LittleEndian.PutUint64(buf[8:], uint64(r.v))
}
func (kvCodec) Decode(buf []byte) kv {
	return kv{k: int64(binary.LittleEndian.Uint64(buf[0:])), v: int64(binary.LittleEndian.Uint64(buf[8:]))}
}

type int64Codec struct{}

func (int64Codec) Size() int { return 8 }
func (int64Codec) Encode(buf []byte, v int64) {
	binary.LittleEndian.PutUint64(buf, uint64(v))
}
func (int64Codec) Decode(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestWriterFinishThenReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run-0001.run")

	w, err := NewWriter[kv, int64](path, kvCodec{}, int64Codec{}, cmpInt64, Options{
		BufElements:             4,
		MaxEntriesInRange:       2,
		DigestExpectedElements:  16,
		DigestFalsePositiveRate: 0.01,
	})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	records := []kv{{1, 10}, {2, 20}, {2, 21}, {3, 30}, {5, 50}, {8, 80}}
	for _, r := range records {
		if err := w.Append(r); err != nil {
			t.Fatalf("Append(%+v): %v", r, err)
		}
	}

	if _, err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	reader, err := Open[kv, int64](path, kvCodec{}, int64Codec{}, cmpInt64)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if reader.Data.Len() != len(records) {
		t.Fatalf("Data.Len() = %d, want %d", reader.Data.Len(), len(records))
	}

	got, err := reader.Data.ReadRange(0, reader.Data.Len())
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	for i, want := range records {
		if got[i] != want {
			t.Fatalf("record[%d] = %+v, want %+v", i, got[i], want)
		}
	}

	low, high := reader.Index.EqualRange(2)
	if low < 0 || high > len(records) || low >= high {
		t.Fatalf("EqualRange(2) = [%d,%d), expected a non-empty window", low, high)
	}
	for i := low; i < high; i++ {
		if got[i].k > 2 {
			t.Fatalf("EqualRange(2) window [%d,%d) includes key %d past the target", low, high, got[i].k)
		}
	}

	if reader.Digest == nil {
		t.Fatal("expected digest to be present")
	}
	for _, r := range records {
		if !reader.Digest.MightContain(r.k) {
			t.Fatalf("MightContain(%d) = false, want true (key was written)", r.k)
		}
	}
}

func TestWriterWithoutDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run-0002.run")

	w, err := NewWriter[kv, int64](path, kvCodec{}, int64Codec{}, cmpInt64, Options{
		BufElements:       4,
		MaxEntriesInRange: 4,
	})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Append(kv{1, 1}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	reader, err := Open[kv, int64](path, kvCodec{}, int64Codec{}, cmpInt64)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if reader.Digest != nil {
		t.Fatal("expected no digest when DigestExpectedElements is 0")
	}
}
