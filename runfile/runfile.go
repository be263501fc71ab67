// Package runfile writes and reads one sealed sorted run: a sequence of
// fixed-size records followed by a sparse range index (rangeindex.Index),
// an optional per-run bloom digest (rangeindex.Digest), and a footer
// locating both — the same data-block/index-block/bloom-filter/footer
// layout the teacher's SST writer uses, generalized from byte
// key-value pairs to an arbitrary record.Record[K] and built directly
// off the index/digest types the rest of this module already defines
// instead of re-deriving block offsets by hand.
package runfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/Priyanshu23/posdbgo/extfile"
	"github.com/Priyanshu23/posdbgo/rangeindex"
	"github.com/Priyanshu23/posdbgo/record"
	"github.com/Priyanshu23/posdbgo/span"
)

// ErrCorruptRun reports a footer or index block whose checksum doesn't
// match its contents.
var ErrCorruptRun = errors.New("runfile: corrupt run file")

// footer is fixed-size and sits at the end of the file.
type footer struct {
	dataSize    int64
	indexOffset int64
	indexSize   int64
	digestOffset int64
	digestSize   int64
	hasDigest   bool
}

const footerPayloadSize = 8*5 + 1 // five int64s + hasDigest
const footerSize = footerPayloadSize + 4 // + trailing crc32

func (f footer) encode() []byte {
	buf := make([]byte, footerPayloadSize)
	binary.LittleEndian.PutUint64(buf[0:], uint64(f.dataSize))
	binary.LittleEndian.PutUint64(buf[8:], uint64(f.indexOffset))
	binary.LittleEndian.PutUint64(buf[16:], uint64(f.indexSize))
	binary.LittleEndian.PutUint64(buf[24:], uint64(f.digestOffset))
	binary.LittleEndian.PutUint64(buf[32:], uint64(f.digestSize))
	if f.hasDigest {
		buf[40] = 1
	}
	out := make([]byte, footerSize)
	copy(out, buf)
	binary.LittleEndian.PutUint32(out[footerPayloadSize:], crc32.ChecksumIEEE(buf))
	return out
}

func decodeFooter(buf []byte) (footer, error) {
	if len(buf) != footerSize {
		return footer{}, ErrCorruptRun
	}
	payload := buf[:footerPayloadSize]
	if crc32.ChecksumIEEE(payload) != binary.LittleEndian.Uint32(buf[footerPayloadSize:]) {
		return footer{}, ErrCorruptRun
	}
	return footer{
		dataSize:    int64(binary.LittleEndian.Uint64(payload[0:])),
		indexOffset: int64(binary.LittleEndian.Uint64(payload[8:])),
		indexSize:   int64(binary.LittleEndian.Uint64(payload[16:])),
		digestOffset: int64(binary.LittleEndian.Uint64(payload[24:])),
		digestSize:   int64(binary.LittleEndian.Uint64(payload[32:])),
		hasDigest:   payload[40] == 1,
	}, nil
}

// Writer builds one sealed run on disk: records must arrive in ascending
// key order (the order merge/memtable already produce them in).
type Writer[T record.Record[K], K any] struct {
	out      *extfile.BinaryOutputFile
	data     *span.BackInserter[T]
	keyCodec span.Codec[K]
	builder  *rangeindex.Builder[K]
	digest   *rangeindex.Digest[K]
	n        int
}

// Options configures a new run Writer.
type Options struct {
	// BufElements sizes the data block's in-memory write buffer.
	BufElements int
	// MaxEntriesInRange caps how many elements a single range-index entry
	// may count; once it is reached the entry closes at the most recent
	// key change.
	MaxEntriesInRange int
	// DigestExpectedElements, when > 0, enables a companion bloom digest
	// sized for this many keys at DigestFalsePositiveRate.
	DigestExpectedElements uint
	DigestFalsePositiveRate float64
}

// NewWriter creates path fresh and returns a Writer ready to accept
// records in ascending key order.
func NewWriter[T record.Record[K], K any](
	path string,
	recCodec span.Codec[T],
	keyCodec span.Codec[K],
	cmp func(a, b K) int,
	opts Options,
) (*Writer[T, K], error) {
	out, err := extfile.CreateOutput(path, extfile.Truncate)
	if err != nil {
		return nil, err
	}

	var digest *rangeindex.Digest[K]
	if opts.DigestExpectedElements > 0 {
		digest = rangeindex.NewDigest[K](opts.DigestExpectedElements, opts.DigestFalsePositiveRate, func(k K) []byte {
			b := make([]byte, keyCodec.Size())
			keyCodec.Encode(b, k)
			return b
		})
	}

	return &Writer[T, K]{
		out:      out,
		data:     span.NewBackInserter[T](out, recCodec, max1(opts.BufElements)),
		keyCodec: keyCodec,
		builder:  rangeindex.NewBuilder[K](cmp, max1(opts.MaxEntriesInRange)),
		digest:   digest,
	}, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Append writes the next record. Records must be supplied in ascending
// key order; out-of-order input silently corrupts the range index, the
// same precondition merge.MergeForEach already guarantees for its sink.
func (w *Writer[T, K]) Append(rec T) error {
	if err := w.data.Push(rec); err != nil {
		return err
	}
	key := rec.Key()
	w.builder.Append(w.n, key)
	if w.digest != nil {
		w.digest.Add(key)
	}
	w.n++
	return nil
}

// Finish flushes the data block, writes the index and digest sections
// and the footer, and seals the file.
func (w *Writer[T, K]) Finish() (*extfile.ImmutableBinaryFile, error) {
	if err := w.data.Flush(); err != nil {
		return nil, err
	}
	dataSize := w.out.Size()

	indexOffset := w.out.Size()
	if err := w.writeIndexBlock(); err != nil {
		return nil, err
	}
	indexSize := w.out.Size() - indexOffset

	var digestOffset, digestSize int64
	if w.digest != nil {
		digestOffset = w.out.Size()
		var buf bytes.Buffer
		if _, err := w.digest.WriteTo(&buf); err != nil {
			return nil, err
		}
		if err := w.out.Append(buf.Bytes()); err != nil {
			return nil, err
		}
		digestSize = w.out.Size() - digestOffset
	}

	f := footer{
		dataSize:    dataSize,
		indexOffset: indexOffset,
		indexSize:   indexSize,
		digestOffset: digestOffset,
		digestSize:   digestSize,
		hasDigest:   w.digest != nil,
	}
	if err := w.out.Append(f.encode()); err != nil {
		return nil, err
	}

	return w.out.Seal()
}

func (w *Writer[T, K]) writeIndexBlock() error {
	idx := w.builder.Finish()
	entries := idx.Entries()
	keySize := w.keyCodec.Size()

	var buf bytes.Buffer
	countBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(countBuf, uint32(len(entries)))
	buf.Write(countBuf)

	keyBuf := make([]byte, keySize)
	for _, e := range entries {
		var intBuf [8]byte
		binary.LittleEndian.PutUint64(intBuf[:], uint64(e.Low))
		buf.Write(intBuf[:])
		binary.LittleEndian.PutUint64(intBuf[:], uint64(e.High))
		buf.Write(intBuf[:])
		w.keyCodec.Encode(keyBuf, e.LowKey)
		buf.Write(keyBuf)
		w.keyCodec.Encode(keyBuf, e.HighKey)
		buf.Write(keyBuf)
	}

	payload := buf.Bytes()
	crc := crc32.ChecksumIEEE(payload)
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], crc)

	if err := w.out.Append(payload); err != nil {
		return err
	}
	return w.out.Append(crcBuf[:])
}

// Reader opens a sealed run for random-access reads and equal-range
// search: Data exposes the span.Immutable satisfying search.Accessor,
// Index exposes the sparse range index, and Digest (nil unless the
// writer enabled one) lets a caller skip a window's I/O entirely on a
// definite miss.
type Reader[T record.Record[K], K any] struct {
	file   *extfile.ImmutableBinaryFile
	Data   *span.Immutable[T]
	Index  *rangeindex.Index[K]
	Digest *rangeindex.Digest[K]
}

// Open reads back a run file written by Writer.Finish.
func Open[T record.Record[K], K any](
	path string,
	recCodec span.Codec[T],
	keyCodec span.Codec[K],
	cmp func(a, b K) int,
) (*Reader[T, K], error) {
	file, err := extfile.OpenImmutable(path)
	if err != nil {
		return nil, err
	}

	if file.Size() < footerSize {
		file.Close()
		return nil, fmt.Errorf("runfile: %s too small to hold a footer: %w", path, ErrCorruptRun)
	}

	footerBuf := make([]byte, footerSize)
	if err := file.ReadAt(footerBuf, file.Size()-footerSize); err != nil {
		file.Close()
		return nil, err
	}
	f, err := decodeFooter(footerBuf)
	if err != nil {
		file.Close()
		return nil, err
	}

	indexBuf := make([]byte, f.indexSize)
	if err := file.ReadAt(indexBuf, f.indexOffset); err != nil {
		file.Close()
		return nil, err
	}
	entries, err := decodeIndexBlock[K](indexBuf, keyCodec)
	if err != nil {
		file.Close()
		return nil, err
	}

	r := &Reader[T, K]{
		file:  file,
		Data:  span.NewImmutable[T](file, recCodec, 0, f.dataSize),
		Index: rangeindex.New(entries, cmp),
	}

	if f.hasDigest {
		digestBuf := make([]byte, f.digestSize)
		if err := file.ReadAt(digestBuf, f.digestOffset); err != nil {
			file.Close()
			return nil, err
		}
		digest, err := rangeindex.ReadDigest[K](bytes.NewReader(digestBuf), func(k K) []byte {
			b := make([]byte, keyCodec.Size())
			keyCodec.Encode(b, k)
			return b
		})
		if err != nil {
			file.Close()
			return nil, err
		}
		r.Digest = digest
	}

	return r, nil
}

func decodeIndexBlock[K any](buf []byte, keyCodec span.Codec[K]) ([]rangeindex.Entry[K], error) {
	if len(buf) < 4+4 {
		return nil, ErrCorruptRun
	}
	payload := buf[:len(buf)-4]
	wantCRC := binary.LittleEndian.Uint32(buf[len(buf)-4:])
	if crc32.ChecksumIEEE(payload) != wantCRC {
		return nil, ErrCorruptRun
	}

	count := binary.LittleEndian.Uint32(payload[:4])
	pos := 4
	keySize := keyCodec.Size()
	entrySize := 16 + 2*keySize

	entries := make([]rangeindex.Entry[K], 0, count)
	for i := uint32(0); i < count; i++ {
		if pos+entrySize > len(payload) {
			return nil, ErrCorruptRun
		}
		low := int64(binary.LittleEndian.Uint64(payload[pos:]))
		pos += 8
		high := int64(binary.LittleEndian.Uint64(payload[pos:]))
		pos += 8
		lowKey := keyCodec.Decode(payload[pos : pos+keySize])
		pos += keySize
		highKey := keyCodec.Decode(payload[pos : pos+keySize])
		pos += keySize

		entries = append(entries, rangeindex.Entry[K]{
			Low: int(low), High: int(high), LowKey: lowKey, HighKey: highKey,
		})
	}

	return entries, nil
}

// Close releases the underlying file handle.
func (r *Reader[T, K]) Close() error {
	return r.file.Close()
}
