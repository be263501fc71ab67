package coding

import "github.com/Priyanshu23/posdbgo/bitio"

// ExpGolomb encodes v as an Elias-gamma coded quotient (v >> Order)
// followed by Order literal remainder bits — the composition used by the
// original C++ ExpGolombCoding<OrderV>.
type ExpGolomb struct {
	Order int
}

func (g ExpGolomb) Compress(s *bitio.Stream, v uint64) error {
	if err := checkSentinel(v); err != nil {
		return err
	}
	quotient := v >> uint(g.Order)
	remainder := v & (uint64(1)<<uint(g.Order) - 1)
	if err := (EliasGamma{}).Compress(s, quotient); err != nil {
		return err
	}
	if g.Order > 0 {
		s.WriteBits(remainder, g.Order)
	}
	return nil
}

func (g ExpGolomb) Decompress(r *bitio.SequentialReader) (uint64, error) {
	quotient, err := (EliasGamma{}).Decompress(r)
	if err != nil {
		return 0, err
	}
	var remainder uint64
	if g.Order > 0 {
		if !r.HasNext(g.Order) {
			return 0, ErrMalformedCode
		}
		remainder = r.ReadBits(g.Order)
	}
	return (quotient << uint(g.Order)) | remainder, nil
}

func (g ExpGolomb) MaxCompressedSize(numBits int) int {
	// The largest non-sentinel value, 2^numBits-2, shifted right by Order
	// leaves a quotient of numBits-Order one bits; for Order > 0 that
	// quotient plus one needs one more bit than the gamma bound for
	// numBits-Order covers.
	quotientBits := numBits - g.Order
	if g.Order > 0 {
		quotientBits++
	}
	if quotientBits < 1 {
		quotientBits = 1
	}
	return (EliasGamma{}).MaxCompressedSize(quotientBits) + g.Order
}
