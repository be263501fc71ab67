package span

import "github.com/Priyanshu23/posdbgo/extfile"

// reader is the minimal file surface Immutable needs — satisfied by
// *extfile.ImmutableBinaryFile in production and by an in-memory fake in
// tests.
type reader interface {
	ReadAt(buf []byte, offset int64) error
}

// Immutable is a read-only, typed, fixed-record-size view over a byte
// range [Begin, End) of a file, interpreted as a sequence of T.
type Immutable[T any] struct {
	file  reader
	codec Codec[T]
	begin int64
	end   int64
}

// NewImmutable returns a view over [begin, end) of file, which must be a
// multiple of codec.Size() long.
func NewImmutable[T any](file *extfile.ImmutableBinaryFile, codec Codec[T], begin, end int64) *Immutable[T] {
	return &Immutable[T]{file: file, codec: codec, begin: begin, end: end}
}

// Len returns the number of elements in the span.
func (s *Immutable[T]) Len() int {
	return int((s.end - s.begin) / int64(s.codec.Size()))
}

// Subspan returns the view of elements [lo, hi) within this span.
func (s *Immutable[T]) Subspan(lo, hi int) *Immutable[T] {
	sz := int64(s.codec.Size())
	return &Immutable[T]{
		file:  s.file,
		codec: s.codec,
		begin: s.begin + int64(lo)*sz,
		end:   s.begin + int64(hi)*sz,
	}
}

// At reads element i directly (single synchronous I/O, no pipelining) —
// used by RandomAccessIterator and by search's windowed reads.
func (s *Immutable[T]) At(i int) (T, error) {
	var zero T
	sz := s.codec.Size()
	buf := make([]byte, sz)
	off := s.begin + int64(i)*int64(sz)
	if err := s.file.ReadAt(buf, off); err != nil {
		return zero, err
	}
	return s.codec.Decode(buf), nil
}

// ReadRange reads elements [lo, hi) in one I/O call.
func (s *Immutable[T]) ReadRange(lo, hi int) ([]T, error) {
	sz := s.codec.Size()
	n := hi - lo
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n*sz)
	off := s.begin + int64(lo)*int64(sz)
	if err := s.file.ReadAt(buf, off); err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = s.codec.Decode(buf[i*sz : (i+1)*sz])
	}
	return out, nil
}
