package rangeindex

import (
	"io"

	"github.com/bits-and-blooms/bloom/v3"
)

// Digest is an optional companion Bloom filter built alongside a Builder,
// letting a caller answer "definitely absent" for a key before doing any
// windowed I/O against the run itself — the same role the bloom filter
// plays next to the index block in the teacher's SST writer, generalized
// from byte keys to an arbitrary serialized key via toBytes.
type Digest[K any] struct {
	filter  *bloom.BloomFilter
	toBytes func(K) []byte
}

// NewDigest returns a Digest sized for expectedElements keys at the given
// false-positive rate.
func NewDigest[K any](expectedElements uint, falsePositiveRate float64, toBytes func(K) []byte) *Digest[K] {
	return &Digest[K]{
		filter:  bloom.NewWithEstimates(expectedElements, falsePositiveRate),
		toBytes: toBytes,
	}
}

// Add records key in the digest.
func (d *Digest[K]) Add(key K) {
	d.filter.Add(d.toBytes(key))
}

// MightContain reports whether key could be present: false is a
// definitive "not present", true means "maybe, go check".
func (d *Digest[K]) MightContain(key K) bool {
	return d.filter.Test(d.toBytes(key))
}

// WriteTo serializes the digest, matching the teacher's own bloom filter
// persistence (a companion section next to the index block).
func (d *Digest[K]) WriteTo(w io.Writer) (int64, error) {
	return d.filter.WriteTo(w)
}

// ReadDigest reconstructs a Digest previously written by WriteTo.
func ReadDigest[K any](r io.Reader, toBytes func(K) []byte) (*Digest[K], error) {
	filter := &bloom.BloomFilter{}
	if _, err := filter.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Digest[K]{filter: filter, toBytes: toBytes}, nil
}
