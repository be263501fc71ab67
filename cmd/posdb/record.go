package main

import (
	"encoding/binary"
)

// countRecord pairs a key with a count that Combine sums across
// duplicate keys, the simplest non-trivial record.Record[uint64].
type countRecord struct {
	Hash  uint64
	Count uint32
}

func (r countRecord) Key() uint64 { return r.Hash }

func lessHash(a, b uint64) bool { return a < b }

func combineCount(a, b countRecord) countRecord {
	return countRecord{Hash: a.Hash, Count: a.Count + b.Count}
}

func cmpHash(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func keyOfRecord(r countRecord) uint64 { return r.Hash }

// countRecordCodec encodes a countRecord as hash(8) | count(4).
type countRecordCodec struct{}

func (countRecordCodec) Size() int { return 12 }
func (countRecordCodec) Encode(buf []byte, v countRecord) {
	binary.LittleEndian.PutUint64(buf[0:], v.Hash)
	binary.LittleEndian.PutUint32(buf[8:], v.Count)
}
func (countRecordCodec) Decode(buf []byte) countRecord {
	return countRecord{
		Hash:  binary.LittleEndian.Uint64(buf[0:]),
		Count: binary.LittleEndian.Uint32(buf[8:]),
	}
}

// hashCodec encodes a bare uint64 key, used for the range index entries.
type hashCodec struct{}

func (hashCodec) Size() int { return 8 }
func (hashCodec) Encode(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf, v)
}
func (hashCodec) Decode(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf)
}
