package extfile

import (
	"io"
	"os"
)

// ImmutableBinaryFile is a read-only, already-sealed view of a file: its
// size is fixed for the view's lifetime.
type ImmutableBinaryFile struct {
	f    *os.File
	path string
	size int64
}

// OpenImmutable opens path read-only and snapshots its size.
func OpenImmutable(path string) (*ImmutableBinaryFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Mode: "immutable", Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Mode: "immutable", Err: err}
	}
	return &ImmutableBinaryFile{f: f, path: path, size: info.Size()}, nil
}

// Size returns the file's size, fixed at open time.
func (b *ImmutableBinaryFile) Size() int64 { return b.size }

// Path returns the file's path.
func (b *ImmutableBinaryFile) Path() string { return b.path }

// ReadAt reads len(buf) bytes starting at offset, returning a ShortReadError
// if fewer bytes were available.
func (b *ImmutableBinaryFile) ReadAt(buf []byte, offset int64) error {
	n, err := b.f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return err
	}
	if n != len(buf) {
		return &ShortReadError{Path: b.path, Offset: offset, Requested: len(buf), Actual: n}
	}
	return nil
}

// Close releases the underlying handle.
func (b *ImmutableBinaryFile) Close() error { return b.f.Close() }

// OutputMode selects whether BinaryOutputFile truncates an existing file
// or appends starting at its current end.
type OutputMode int

const (
	// Truncate creates the file fresh, discarding any prior contents.
	Truncate OutputMode = iota
	// Append opens an existing file (creating it if absent) positioned
	// at its current end.
	Append
)

// BinaryOutputFile is a write-only file view used to build a sorted run
// or sealed output incrementally, finished by Seal into an
// ImmutableBinaryFile.
type BinaryOutputFile struct {
	f      *os.File
	path   string
	size   int64
	onByte func([]byte)
}

// CreateOutput opens path for writing under mode.
func CreateOutput(path string, mode OutputMode) (*BinaryOutputFile, error) {
	flag := os.O_RDWR | os.O_CREATE
	if mode == Truncate {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, &OpenError{Path: path, Mode: "output", Err: err}
	}
	var size int64
	if mode == Append {
		info, statErr := f.Stat()
		if statErr != nil {
			f.Close()
			return nil, &OpenError{Path: path, Mode: "output", Err: statErr}
		}
		size = info.Size()
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, &OpenError{Path: path, Mode: "output", Err: err}
		}
	}
	return &BinaryOutputFile{f: f, path: path, size: size}, nil
}

// NewObservable attaches a callback invoked synchronously with each
// appended byte slice before it's written, turning this into the
// "observable" variant used when a caller wants to build a companion
// structure (a range index, a bloom filter) while writing.
func (b *BinaryOutputFile) NewObservable(onByte func([]byte)) *BinaryOutputFile {
	b.onByte = onByte
	return b
}

// Append writes buf at the current end of the file.
func (b *BinaryOutputFile) Append(buf []byte) error {
	if b.onByte != nil {
		b.onByte(buf)
	}
	n, err := b.f.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return &ShortAppendError{Path: b.path, Requested: len(buf), Actual: n}
	}
	b.size += int64(n)
	return nil
}

// Size returns the number of bytes appended so far.
func (b *BinaryOutputFile) Size() int64 { return b.size }

// Flush durably persists everything written so far; it's the only
// durable path this type exposes.
func (b *BinaryOutputFile) Flush() error {
	return b.f.Sync()
}

// Seal flushes, truncates the file to its logical size, and returns an
// ImmutableBinaryFile over the result. Flush runs before the truncate so a
// sealed file can never carry unflushed tail bytes.
func (b *BinaryOutputFile) Seal() (*ImmutableBinaryFile, error) {
	if err := b.Flush(); err != nil {
		b.f.Close()
		return nil, err
	}
	if err := b.f.Truncate(b.size); err != nil {
		b.f.Close()
		return nil, err
	}
	if err := b.f.Close(); err != nil {
		return nil, err
	}
	f, err := os.Open(b.path)
	if err != nil {
		return nil, &OpenError{Path: b.path, Mode: "immutable", Err: err}
	}
	return &ImmutableBinaryFile{f: f, path: b.path, size: b.size}, nil
}

// BinaryInputOutputFile supports both reads and appends against one
// handle, used when a pass reads a run while simultaneously writing its
// merged output to the same physical file's tail (rare, but the spec
// allows it for in-place compaction).
type BinaryInputOutputFile struct {
	f    *os.File
	path string
	size int64
}

// OpenInputOutput opens path for both reading and appending.
func OpenInputOutput(path string) (*BinaryInputOutputFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &OpenError{Path: path, Mode: "input-output", Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Mode: "input-output", Err: err}
	}
	return &BinaryInputOutputFile{f: f, path: path, size: info.Size()}, nil
}

// ReadAt reads len(buf) bytes starting at offset.
func (b *BinaryInputOutputFile) ReadAt(buf []byte, offset int64) error {
	n, err := b.f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return err
	}
	if n != len(buf) {
		return &ShortReadError{Path: b.path, Offset: offset, Requested: len(buf), Actual: n}
	}
	return nil
}

// Append writes buf at the current logical end of the file.
func (b *BinaryInputOutputFile) Append(buf []byte) error {
	n, err := b.f.WriteAt(buf, b.size)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return &ShortAppendError{Path: b.path, Requested: len(buf), Actual: n}
	}
	b.size += int64(n)
	return nil
}

// Size returns the current logical size.
func (b *BinaryInputOutputFile) Size() int64 { return b.size }

// Flush durably persists everything written so far.
func (b *BinaryInputOutputFile) Flush() error { return b.f.Sync() }

// Close flushes and closes the file.
func (b *BinaryInputOutputFile) Close() error {
	if err := b.Flush(); err != nil {
		b.f.Close()
		return err
	}
	return b.f.Close()
}
