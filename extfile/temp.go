package extfile

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
)

const tempNameLength = 16

const alphanum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TemporaryPaths hands out unique scratch file paths under one directory
// and removes them all on Close — the merge passes' working area.
type TemporaryPaths struct {
	mu    sync.Mutex
	dir   string
	paths []string
}

// NewTemporaryPaths creates dir (if needed) and returns a TemporaryPaths
// rooted there.
func NewTemporaryPaths(dir string) (*TemporaryPaths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TemporaryPaths{dir: dir}, nil
}

func randomName() string {
	b := make([]byte, tempNameLength)
	for i := range b {
		b[i] = alphanum[rand.IntN(len(alphanum))]
	}
	return string(b)
}

// Next returns a fresh, never-before-issued path under the managed
// directory.
func (t *TemporaryPaths) Next() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := filepath.Join(t.dir, randomName())
	t.paths = append(t.paths, p)
	return p
}

// Dir returns the managed directory.
func (t *TemporaryPaths) Dir() string { return t.dir }

// Clear removes every path issued so far without forgetting the
// directory, so future Next calls keep working.
func (t *TemporaryPaths) Clear() {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// Close removes every issued path and the managed directory itself.
func (t *TemporaryPaths) Close() error {
	t.Clear()
	return os.RemoveAll(t.dir)
}
