// Package coding implements the bit-packed variable-length integer codings
// used for on-disk key encoding: Elias gamma/delta/omega, Fibonacci
// (Zeckendorf), Exponential-Golomb-k and VLQ-k. Each Coder both compresses
// a single uint64 into a bitio.Stream and decompresses one back out of a
// bitio.SequentialReader; CompressSequence/DecompressSequence lift that to
// fixed-size arrays and length-prefixed slices.
package coding

import (
	"errors"

	"github.com/Priyanshu23/posdbgo/bitio"
)

// ErrMalformedCode is returned when a decoder runs out of bits or observes
// a header shape that cannot correspond to a validly encoded value.
var ErrMalformedCode = errors.New("coding: malformed code")

// ErrSentinelValue is returned when the caller tries to encode the
// type-maximum value, which every coder here reserves as a sentinel.
var ErrSentinelValue = errors.New("coding: value is reserved sentinel")

const sentinel = ^uint64(0)

// Coder compresses and decompresses a single unsigned integer against a
// packed bit stream.
type Coder interface {
	// Compress appends the code for v to s.
	Compress(s *bitio.Stream, v uint64) error
	// Decompress reads one value back from r.
	Decompress(r *bitio.SequentialReader) (uint64, error)
	// MaxCompressedSize returns an upper bound, in bits, on the size of
	// the code for any non-sentinel value of a numBits-wide unsigned type,
	// that is any value up to 2^numBits-2.
	MaxCompressedSize(numBits int) int
}

func checkSentinel(v uint64) error {
	if v == sentinel {
		return ErrSentinelValue
	}
	return nil
}

// CompressSequence encodes a fixed-length array of values back to back,
// with no length prefix — the reader must already know how many values to
// expect.
func CompressSequence(c Coder, s *bitio.Stream, values []uint64) error {
	for _, v := range values {
		if err := c.Compress(s, v); err != nil {
			return err
		}
	}
	return nil
}

// DecompressSequence reads exactly n values encoded by CompressSequence.
func DecompressSequence(c Coder, r *bitio.SequentialReader, n int) ([]uint64, error) {
	out := make([]uint64, n)
	for i := range out {
		v, err := c.Decompress(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CompressCountedSequence encodes a slice of values prefixed with its
// length, the length itself compressed with c like any other value, so
// decode doesn't need to be told the count out of band.
func CompressCountedSequence(c Coder, s *bitio.Stream, values []uint64) error {
	if err := c.Compress(s, uint64(len(values))); err != nil {
		return err
	}
	return CompressSequence(c, s, values)
}

// DecompressCountedSequence reads a slice encoded by
// CompressCountedSequence.
func DecompressCountedSequence(c Coder, r *bitio.SequentialReader) ([]uint64, error) {
	n, err := c.Decompress(r)
	if err != nil {
		return nil, err
	}
	return DecompressSequence(c, r, int(n))
}
