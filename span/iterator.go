package span

import "io"

// SequentialIterator walks an Immutable span forward in fixed-size
// windows, prefetching the next window while the caller consumes the
// current one: the front buffer is ready to read, the back buffer is
// already being (asynchronously, on a helper goroutine) refilled, so a
// consumer that keeps pace with I/O never blocks on the buffer swap
// itself — only on the first fill.
type SequentialIterator[T any] struct {
	span       *Immutable[T]
	windowSize int

	frontIdx int // index of first element currently in front
	front    []T
	frontPos int // read cursor within front

	backReady chan struct{}
	backErr   error
	backIdx   int
	back      []T

	exhausted bool
}

// NewSequentialIterator returns an iterator over s that reads windowSize
// elements at a time, starting at element 0.
func NewSequentialIterator[T any](s *Immutable[T], windowSize int) (*SequentialIterator[T], error) {
	if windowSize < 1 {
		windowSize = 1
	}
	it := &SequentialIterator[T]{span: s, windowSize: windowSize}
	if err := it.fillFront(); err != nil {
		return nil, err
	}
	it.startBackRefill()
	return it, nil
}

func (it *SequentialIterator[T]) fillFront() error {
	n := it.span.Len()
	hi := it.windowSize
	if hi > n {
		hi = n
	}
	data, err := it.span.ReadRange(0, hi)
	it.front = data
	it.frontIdx = 0
	return err
}

func (it *SequentialIterator[T]) startBackRefill() {
	n := it.span.Len()
	nextStart := it.frontIdx + len(it.front)
	if nextStart >= n {
		it.backReady = nil
		return
	}
	hi := nextStart + it.windowSize
	if hi > n {
		hi = n
	}

	it.backReady = make(chan struct{})
	start, end := nextStart, hi
	go func() {
		data, err := it.span.ReadRange(start, end)
		it.back = data
		it.backIdx = start
		it.backErr = err
		close(it.backReady)
	}()
}

func (it *SequentialIterator[T]) waitForBack() {
	if it.backReady != nil {
		<-it.backReady
	}
}

// HasNext reports whether another element remains to be read.
func (it *SequentialIterator[T]) HasNext() bool {
	return !it.exhausted && it.Index() < it.span.Len()
}

// Next returns the next element and advances the cursor, swapping in the
// prefetched back buffer and kicking off the next prefetch when the
// front buffer is exhausted.
func (it *SequentialIterator[T]) Next() (T, error) {
	var zero T
	if it.frontPos >= len(it.front) {
		it.waitForBack()
		if it.backErr != nil && it.backErr != io.EOF {
			return zero, it.backErr
		}
		if it.backReady == nil {
			it.exhausted = true
			return zero, io.EOF
		}
		it.front, it.frontIdx = it.back, it.backIdx
		it.frontPos = 0
		it.back = nil
		it.startBackRefill()
		if len(it.front) == 0 {
			it.exhausted = true
			return zero, io.EOF
		}
	}

	v := it.front[it.frontPos]
	it.frontPos++
	return v, nil
}

// Index returns the absolute element index the next Next() call would
// return.
func (it *SequentialIterator[T]) Index() int {
	return it.frontIdx + it.frontPos
}

// RandomAccessIterator reads arbitrary indices of an Immutable span,
// caching only the last index read so repeated re-reads of the same
// position don't re-issue I/O.
type RandomAccessIterator[T any] struct {
	span       *Immutable[T]
	lastIdx    int
	lastVal    T
	hasLast    bool
}

// NewRandomAccessIterator returns an iterator over s.
func NewRandomAccessIterator[T any](s *Immutable[T]) *RandomAccessIterator[T] {
	return &RandomAccessIterator[T]{span: s, lastIdx: -1}
}

// At returns element i, reusing the cached value if i == the last index
// read.
func (it *RandomAccessIterator[T]) At(i int) (T, error) {
	if it.hasLast && i == it.lastIdx {
		return it.lastVal, nil
	}
	v, err := it.span.At(i)
	if err != nil {
		var zero T
		return zero, err
	}
	it.lastIdx, it.lastVal, it.hasLast = i, v, true
	return v, nil
}
