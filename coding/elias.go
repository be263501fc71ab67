package coding

import (
	"github.com/Priyanshu23/posdbgo/bitio"
	"github.com/Priyanshu23/posdbgo/util"
)

// EliasGamma encodes value+1 as N zero bits followed by the N+1 bit binary
// representation of value+1 (whose leading bit is always 1), where
// N = floor(log2(value+1)).
type EliasGamma struct{}

func (EliasGamma) Compress(s *bitio.Stream, v uint64) error {
	if err := checkSentinel(v); err != nil {
		return err
	}
	x := v + 1
	n := util.FloorLog2(x)
	s.WriteBitN(false, n)
	s.WriteBits(x, n+1)
	return nil
}

func (EliasGamma) Decompress(r *bitio.SequentialReader) (uint64, error) {
	if !r.HasNext(1) {
		return 0, ErrMalformedCode
	}
	n := r.SkipBitsWhileEqualTo(false)
	if !r.HasNext(n + 1) {
		return 0, ErrMalformedCode
	}
	x := r.ReadBits(n + 1)
	return x - 1, nil
}

func (EliasGamma) MaxCompressedSize(numBits int) int {
	return 2*(numBits-1) + 1
}

// EliasDelta encodes value+1 = x by writing the Elias-gamma code of
// N+1 (where N = floor(log2(x))) followed by the low N bits of x.
type EliasDelta struct{}

func (EliasDelta) Compress(s *bitio.Stream, v uint64) error {
	if err := checkSentinel(v); err != nil {
		return err
	}
	x := v + 1
	n := util.FloorLog2(x)
	if err := (EliasGamma{}).Compress(s, uint64(n)); err != nil {
		return err
	}
	if n > 0 {
		s.WriteBits(x, n)
	}
	return nil
}

func (EliasDelta) Decompress(r *bitio.SequentialReader) (uint64, error) {
	n64, err := (EliasGamma{}).Decompress(r)
	if err != nil {
		return 0, err
	}
	n := int(n64)
	if n == 0 {
		return 0, nil
	}
	if !r.HasNext(n) {
		return 0, ErrMalformedCode
	}
	low := r.ReadBits(n)
	x := (uint64(1) << uint(n)) | low
	return x - 1, nil
}

func (EliasDelta) MaxCompressedSize(numBits int) int {
	if numBits <= 0 {
		return 1
	}
	return (numBits - 1) + 2*util.FloorLog2(uint64(numBits)) + 1
}

// EliasOmega recursively prefixes the binary representation of value+1
// with the binary representations of each successive bit-length (every
// group starts with its own leading 1 bit), and ends with a single 0 bit
// after the group holding the real value.
type EliasOmega struct{}

func (EliasOmega) Compress(s *bitio.Stream, v uint64) error {
	if err := checkSentinel(v); err != nil {
		return err
	}
	x := v + 1

	// Each iteration's code is prepended in front of what's already been
	// accumulated, so collect the group values first and emit them in
	// reverse collection order.
	var groups []uint64
	n := x
	for n > 1 {
		groups = append(groups, n)
		l := util.FloorLog2(n) + 1
		n = uint64(l - 1)
	}

	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		l := util.FloorLog2(g) + 1
		s.WriteBits(g, l)
	}
	s.WriteBit(false)
	return nil
}

func (EliasOmega) Decompress(r *bitio.SequentialReader) (uint64, error) {
	n := 1
	for {
		if !r.HasNext(1) {
			return 0, ErrMalformedCode
		}
		if !r.ReadBit() {
			break
		}
		if !r.HasNext(n) {
			return 0, ErrMalformedCode
		}
		rest := r.ReadBits(n)
		n = int((uint64(1) << uint(n)) | rest)
	}
	if n == 0 {
		return 0, ErrMalformedCode
	}
	return uint64(n) - 1, nil
}

func (EliasOmega) MaxCompressedSize(numBits int) int {
	switch {
	case numBits <= 8:
		return 14
	case numBits <= 16:
		return 23
	case numBits <= 32:
		return 43
	default:
		return 76
	}
}
