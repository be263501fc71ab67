package ingest

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Priyanshu23/posdbgo/segmentmanager"
)

func newTestWriter(t *testing.T, queueDepth int) *Writer {
	t.Helper()
	dir, err := segmentmanager.NewRunDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewRunDir: %v", err)
	}
	return NewWriter(queueDepth, dir)
}

func TestWriteBlocksUntilDurable(t *testing.T) {
	dir := t.TempDir()
	rd, err := segmentmanager.NewRunDir(dir)
	if err != nil {
		t.Fatalf("NewRunDir: %v", err)
	}
	w := NewWriter(1, rd)
	defer w.Close()

	if err := w.Write(&Entry{Key: []byte("a"), Value: []byte("1")}); err != nil {
		t.Fatal(err)
	}

	// Write has returned, so the entry must already be in the segment file.
	f, err := os.Open(filepath.Join(dir, "segment-0001.run"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := Decode(f)
	if err != nil {
		t.Fatalf("Write returned before durable commit: %v", err)
	}
	if string(got.Key) != "a" || string(got.Value) != "1" {
		t.Fatalf("got %q=%q, want \"a\"=\"1\"", got.Key, got.Value)
	}
}

func TestConcurrentWrites(t *testing.T) {
	w := newTestWriter(t, 1024)
	defer w.Close()

	var wg sync.WaitGroup
	for i := range 1000 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := &Entry{Key: []byte("k"), Value: []byte(strconv.Itoa(i))}
			if err := w.Write(e); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
}

func TestCloseUnblocksWriters(t *testing.T) {
	w := newTestWriter(t, 1)

	go func() {
		_ = w.Write(&Entry{Key: []byte("x"), Value: []byte("1")})
	}()

	time.Sleep(5 * time.Millisecond)
	w.Close()

	done := make(chan struct{})
	go func() {
		_ = w.Write(&Entry{Key: []byte("y"), Value: []byte("2")})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer blocked after Close")
	}
}
