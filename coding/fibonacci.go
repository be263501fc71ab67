package coding

import "github.com/Priyanshu23/posdbgo/bitio"

// fibonacciTable holds Fibonacci numbers F(2)..F(93) (F(2)=1, F(3)=2, ...),
// the largest table that fits without overflowing a uint64 Zeckendorf sum.
var fibonacciTable = func() []uint64 {
	const maxIndex = 91
	t := make([]uint64, maxIndex+1)
	t[0], t[1] = 1, 2
	for i := 2; i <= maxIndex; i++ {
		t[i] = t[i-1] + t[i-2]
	}
	return t
}()

// Fibonacci encodes value+1 using the Zeckendorf representation: the
// unique sum of non-consecutive Fibonacci numbers equal to value+1, coded
// as a bit per table entry (lowest index first) and terminated by
// an extra 1 bit, so every code ends "11" and no earlier "11" can occur.
type Fibonacci struct{}

func (Fibonacci) Compress(s *bitio.Stream, v uint64) error {
	if err := checkSentinel(v); err != nil {
		return err
	}
	x := v + 1

	// find the largest fibonacci index usable
	hi := 0
	for hi+1 < len(fibonacciTable) && fibonacciTable[hi+1] <= x {
		hi++
	}

	bitsOut := make([]bool, hi+1)
	remaining := x
	for i := hi; i >= 0; i-- {
		if fibonacciTable[i] <= remaining {
			bitsOut[i] = true
			remaining -= fibonacciTable[i]
		}
	}

	for i := 0; i <= hi; i++ {
		s.WriteBit(bitsOut[i])
	}
	s.WriteBit(true)
	return nil
}

func (Fibonacci) Decompress(r *bitio.SequentialReader) (uint64, error) {
	var sum uint64
	prev := false
	idx := 0
	for {
		if !r.HasNext(1) {
			return 0, ErrMalformedCode
		}
		b := r.ReadBit()
		if b && prev {
			break
		}
		if b {
			if idx >= len(fibonacciTable) {
				return 0, ErrMalformedCode
			}
			sum += fibonacciTable[idx]
		}
		prev = b
		idx++
	}
	if sum == 0 {
		return 0, ErrMalformedCode
	}
	return sum - 1, nil
}

func (Fibonacci) MaxCompressedSize(numBits int) int {
	// Roughly 1.44 bits of Fibonacci code per bit of binary magnitude,
	// plus the terminating bit; rounded generously.
	return numBits + numBits/2 + 2
}
