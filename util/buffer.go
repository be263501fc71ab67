package util

// Buffer is a single heap-allocated slice of fixed capacity, used as one
// half of a DoubleBuffer.
type Buffer[T any] struct {
	data []T
}

// NewBuffer allocates a Buffer able to hold size elements.
func NewBuffer[T any](size int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, size)}
}

// Data returns the buffer's backing slice.
func (b *Buffer[T]) Data() []T { return b.data }

// Len returns the buffer's capacity.
func (b *Buffer[T]) Len() int { return len(b.data) }

// DoubleBuffer holds a front and back Buffer of the same size and can swap
// which one is "front" without copying — the role played by the pipelined
// refill in span.Immutable's SequentialIterator and by span.BackInserter.
type DoubleBuffer[T any] struct {
	front *Buffer[T]
	back  *Buffer[T]
}

// NewDoubleBuffer allocates two same-sized Buffers.
func NewDoubleBuffer[T any](size int) *DoubleBuffer[T] {
	return &DoubleBuffer[T]{
		front: NewBuffer[T](size),
		back:  NewBuffer[T](size),
	}
}

// Data returns the front buffer's backing slice.
func (d *DoubleBuffer[T]) Data() []T { return d.front.Data() }

// BackData returns the back buffer's backing slice.
func (d *DoubleBuffer[T]) BackData() []T { return d.back.Data() }

// Swap exchanges front and back without copying any elements.
func (d *DoubleBuffer[T]) Swap() {
	d.front, d.back = d.back, d.front
}
