package extfile

import (
	"os"
	"sync/atomic"
)

// openUnpooledCount is a process-wide, advisory (relaxed-ordering) soft
// cap on concurrently open UnpooledFiles — see DESIGN.md's "racy unpooled
// cap" decision: a hard semaphore would serialize opens across unrelated
// paths for no correctness benefit, since the cap exists to bound fd
// usage, not to provide exclusion.
var openUnpooledCount atomic.Int64

// UnpooledFile wraps a plain *os.File that stays open for its whole
// lifetime (as opposed to Pool's reopen-on-demand handles), used for
// hot files accessed by exactly one owner — sealed runs, WAL segments.
type UnpooledFile struct {
	f    *os.File
	path string
}

// OpenUnpooled opens path, failing with ErrOpenExhausted if doing so would
// push the process past maxOpen concurrently open unpooled files.
func OpenUnpooled(path string, flag int, perm os.FileMode, maxOpen int64) (*UnpooledFile, error) {
	if count := openUnpooledCount.Add(1); maxOpen > 0 && count > maxOpen {
		openUnpooledCount.Add(-1)
		return nil, ErrOpenExhausted
	}

	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		openUnpooledCount.Add(-1)
		return nil, &OpenError{Path: path, Mode: "unpooled", Err: err}
	}

	return &UnpooledFile{f: f, path: path}, nil
}

// File returns the underlying *os.File.
func (u *UnpooledFile) File() *os.File { return u.f }

// Path returns the file's path.
func (u *UnpooledFile) Path() string { return u.path }

// Close closes the file and releases its slot in the soft cap.
func (u *UnpooledFile) Close() error {
	openUnpooledCount.Add(-1)
	return u.f.Close()
}

// OpenUnpooledCount reports the current (racy, advisory) count of open
// unpooled files.
func OpenUnpooledCount() int64 {
	return openUnpooledCount.Load()
}
