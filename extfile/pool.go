package extfile

import (
	"container/list"
	"os"
	"sync"
)

// Pool is a process-wide LRU of open *os.File handles keyed by path, with
// a soft capacity: opening past that capacity evicts (closes) the least
// recently used handle first. Modeled on the teacher's segment rotation
// (one active handle, soft size cap) generalized to many paths sharing one
// eviction budget, the same role PooledFile/FilePool play around
// External.h's handle cache.
type Pool struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type poolEntry struct {
	path string
	f    *os.File
}

// NewPool returns a Pool that keeps at most capacity handles open at once.
func NewPool(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// PooledFile is a handle to a path managed by a Pool; the underlying
// *os.File may be transparently closed and reopened by the pool between
// calls to WithHandle.
type PooledFile struct {
	pool *Pool
	path string
	flag int
	perm os.FileMode
}

// Open registers path with the pool under the given os.OpenFile flags,
// without necessarily opening it yet — the first WithHandle call does
// that lazily. The O_TRUNC bit of flag is dropped on every open, the
// first one included, so the pool never truncates the file.
func (p *Pool) Open(path string, flag int, perm os.FileMode) *PooledFile {
	return &PooledFile{pool: p, path: path, flag: flag, perm: perm}
}

// WithHandle obtains (opening or reusing) the *os.File for pf, runs fn
// against it while holding the pool lock for bookkeeping (but not for the
// duration of fn itself beyond handle acquisition), and marks it most
// recently used.
func (pf *PooledFile) WithHandle(fn func(*os.File) error) error {
	f, err := pf.pool.acquire(pf)
	if err != nil {
		return &OpenError{Path: pf.path, Mode: "pooled", Err: err}
	}
	return fn(f)
}

func (p *Pool) acquire(pf *PooledFile) (*os.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if el, ok := p.entries[pf.path]; ok {
		p.order.MoveToFront(el)
		return el.Value.(*poolEntry).f, nil
	}

	if len(p.entries) >= p.capacity {
		p.evictLastLocked()
	}

	// O_TRUNC is stripped on every open, first open and reopen alike.
	flag := pf.flag &^ os.O_TRUNC
	f, err := os.OpenFile(pf.path, flag, pf.perm)
	if err != nil {
		return nil, err
	}

	entry := &poolEntry{path: pf.path, f: f}
	el := p.order.PushFront(entry)
	p.entries[pf.path] = el
	return f, nil
}

func (p *Pool) evictLastLocked() {
	el := p.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*poolEntry)
	_ = entry.f.Close()
	p.order.Remove(el)
	delete(p.entries, entry.path)
}

// Evict closes and forgets the handle for path, if currently open. Used
// when a file is deleted or sealed and must not be served stale.
func (p *Pool) Evict(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.entries[path]; ok {
		entry := el.Value.(*poolEntry)
		_ = entry.f.Close()
		p.order.Remove(el)
		delete(p.entries, path)
	}
}

// Close closes every currently open handle in the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for el := p.order.Front(); el != nil; el = el.Next() {
		_ = el.Value.(*poolEntry).f.Close()
	}
	p.entries = make(map[string]*list.Element)
	p.order = list.New()
}
