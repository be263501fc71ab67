package ingest

import (
	"io"
	"os"
	"sync"

	"github.com/Priyanshu23/posdbgo/segmentmanager"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = os.ErrClosed

// Writer serializes concurrent Write calls through a single goroutine
// that owns the active log segment, the same one-writer-many-callers
// shape extfile.WorkerPool uses for its per-path queues. Entries commit
// in the order they're submitted, each durably synced before its Write
// call returns.
type Writer struct {
	mu     sync.Mutex
	ch     chan *writeRequest
	done   chan struct{}
	closed bool
	dir    *segmentmanager.RunDir
	wg     sync.WaitGroup
}

type writeRequest struct {
	entry *Entry
	done  chan error
}

// NewWriter starts a Writer backed by dir, buffering up to queueDepth
// pending Write calls before callers block.
func NewWriter(queueDepth int, dir *segmentmanager.RunDir) *Writer {
	w := &Writer{
		ch:   make(chan *writeRequest, queueDepth),
		done: make(chan struct{}),
		dir:  dir,
	}
	go w.loop()
	return w
}

// Write durably appends entry and blocks until it's been synced.
func (w *Writer) Write(entry *Entry) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	req := &writeRequest{entry: entry, done: make(chan error, 1)}
	select {
	case w.ch <- req:
		return <-req.done
	case <-w.done:
		return ErrClosed
	}
}

// Close stops accepting new writes, waits for in-flight ones to finish,
// and releases the underlying segment directory.
func (w *Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	w.wg.Wait()
	close(w.ch)
	<-w.done
	return w.dir.Close()
}

func (w *Writer) loop() {
	defer close(w.done)

	for req := range w.ch {
		err := w.dir.WriteActive(req.entry.size(), func(out io.Writer) error {
			return req.entry.Encode(out)
		})
		req.done <- err
	}
}
