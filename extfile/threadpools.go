package extfile

import (
	"path/filepath"
	"sort"
	"sync"
)

// ThreadPoolSpec names a worker pool and the path prefixes it should
// serve. Paths are matched by longest-prefix match; a path that matches
// no spec is served by the registry's separate default pool.
type ThreadPoolSpec struct {
	Name    string
	Threads int
	Paths   []string
}

// ThreadPoolRegistry resolves a file path to the WorkerPool responsible
// for it, by longest matching path prefix.
type ThreadPoolRegistry struct {
	mu       sync.Mutex
	byPrefix []prefixBinding
	byName   map[string]*WorkerPool
	def      *WorkerPool
}

type prefixBinding struct {
	prefix string
	pool   *WorkerPool
}

// NewThreadPoolRegistry builds a registry from specs and a default pool
// spec for unmatched paths.
func NewThreadPoolRegistry(specs []ThreadPoolSpec, defaultThreads int) *ThreadPoolRegistry {
	r := &ThreadPoolRegistry{
		byName: make(map[string]*WorkerPool, len(specs)),
		def:    NewWorkerPool(defaultThreads),
	}
	for _, spec := range specs {
		pool := NewWorkerPool(spec.Threads)
		r.byName[spec.Name] = pool
		for _, p := range spec.Paths {
			abs, err := filepath.Abs(filepath.Clean(p))
			if err != nil {
				abs = filepath.Clean(p)
			}
			r.byPrefix = append(r.byPrefix, prefixBinding{prefix: abs, pool: pool})
		}
	}
	sort.Slice(r.byPrefix, func(i, j int) bool {
		return len(r.byPrefix[i].prefix) > len(r.byPrefix[j].prefix)
	})
	return r
}

// Resolve returns the WorkerPool responsible for path.
func (r *ThreadPoolRegistry) Resolve(path string) *WorkerPool {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		abs = filepath.Clean(path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byPrefix {
		if len(abs) >= len(b.prefix) && abs[:len(b.prefix)] == b.prefix {
			return b.pool
		}
	}
	return r.def
}

// Close shuts down every pool owned by the registry.
func (r *ThreadPoolRegistry) Close() {
	r.mu.Lock()
	pools := make([]*WorkerPool, 0, len(r.byName)+1)
	for _, p := range r.byName {
		pools = append(pools, p)
	}
	pools = append(pools, r.def)
	r.mu.Unlock()

	for _, p := range pools {
		p.Close()
	}
}
