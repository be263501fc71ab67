package extfile

import (
	"path/filepath"
	"testing"
)

func TestBinaryOutputFileSealRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.bin")

	out, err := CreateOutput(path, Truncate)
	if err != nil {
		t.Fatalf("CreateOutput: %v", err)
	}
	if err := out.Append([]byte("abc")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := out.Append([]byte("de")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	sealed, err := out.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	defer sealed.Close()

	if sealed.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", sealed.Size())
	}
	buf := make([]byte, 5)
	if err := sealed.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != "abcde" {
		t.Fatalf("content = %q, want abcde", buf)
	}
}

func TestBinaryOutputFileShortRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.bin")
	out, err := CreateOutput(path, Truncate)
	if err != nil {
		t.Fatalf("CreateOutput: %v", err)
	}
	if err := out.Append([]byte("ab")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	sealed, err := out.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	defer sealed.Close()

	buf := make([]byte, 4)
	err = sealed.ReadAt(buf, 0)
	if _, ok := err.(*ShortReadError); !ok {
		t.Fatalf("expected ShortReadError, got %v", err)
	}
}

func TestObservableBinaryOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.bin")
	out, err := CreateOutput(path, Truncate)
	if err != nil {
		t.Fatalf("CreateOutput: %v", err)
	}

	var seen [][]byte
	out.NewObservable(func(b []byte) {
		cp := append([]byte(nil), b...)
		seen = append(seen, cp)
	})

	if err := out.Append([]byte("xy")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := out.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if len(seen) != 1 || string(seen[0]) != "xy" {
		t.Fatalf("observed writes = %v, want [xy]", seen)
	}
}
