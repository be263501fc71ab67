package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Priyanshu23/posdbgo/ingest"
	"github.com/Priyanshu23/posdbgo/memtable"
	"github.com/Priyanshu23/posdbgo/runfile"
	"github.com/Priyanshu23/posdbgo/segmentmanager"
)

// runIngest reads whitespace-separated "<hash> <count>" lines, logging
// each durably before accumulating it in a memtable, and seals a new
// sorted run every batchSize records (and once more at EOF for whatever
// remains).
func runIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	dataDir := fs.String("data", "posdb-data", "data directory (holds log/ and runs/ subdirectories)")
	inPath := fs.String("in", "", "input file of \"hash count\" lines (default: stdin)")
	batchSize := fs.Int("batch", 4096, "records accumulated in memory before a run is sealed")
	configPath := addConfigFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rt, err := openRoot(*configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	in := io.Reader(os.Stdin)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	logDir, err := segmentmanager.NewRunDir(filepath.Join(*dataDir, "log"))
	if err != nil {
		return fmt.Errorf("open durability log: %w", err)
	}
	log := ingest.NewWriter(rt.opts.DefaultThreadPoolThreads, logDir)
	defer log.Close()

	runsDir := filepath.Join(*dataDir, "runs")
	if err := os.MkdirAll(runsDir, 0o755); err != nil {
		return err
	}

	mt := memtable.New[countRecord, uint64](lessHash, combineCount)
	sealed := 0

	flush := func() error {
		if mt.Len() == 0 {
			return nil
		}
		path, err := nextRunPath(runsDir)
		if err != nil {
			return err
		}
		w, err := runfile.NewWriter[countRecord, uint64](path, countRecordCodec{}, hashCodec{}, cmpHash, runfile.Options{
			BufElements:             rt.opts.IndexBuilderBufferSize,
			MaxEntriesInRange:       rt.opts.MaxNumEntriesInRange,
			DigestExpectedElements:  digestElements(rt.opts.RunDigest, mt.Len()),
			DigestFalsePositiveRate: 0.01,
		})
		if err != nil {
			return err
		}
		for rec := range mt.Sorted() {
			if err := w.Append(rec); err != nil {
				return err
			}
		}
		if _, err := w.Finish(); err != nil {
			return err
		}
		mt = memtable.New[countRecord, uint64](lessHash, combineCount)
		sealed++
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseCountLine(line)
		if err != nil {
			return fmt.Errorf("parse %q: %w", line, err)
		}

		entry := &ingest.Entry{Key: make([]byte, 8), Value: make([]byte, 4)}
		binary.LittleEndian.PutUint64(entry.Key, rec.Hash)
		binary.LittleEndian.PutUint32(entry.Value, rec.Count)
		if err := log.Write(entry); err != nil {
			return fmt.Errorf("durability log: %w", err)
		}

		mt.Insert(rec)
		if mt.Len() >= *batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "sealed %d run(s) in %s\n", sealed, runsDir)
	return nil
}

// digestElements enables a per-run bloom digest sized to the batch
// whenever config.Options.RunDigest opts in, and disables it (0) otherwise.
func digestElements(enabled bool, n int) uint {
	if !enabled || n <= 0 {
		return 0
	}
	return uint(n)
}

func parseCountLine(line string) (countRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return countRecord{}, fmt.Errorf("expected \"hash count\", got %d fields", len(fields))
	}
	hash, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return countRecord{}, err
	}
	count, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return countRecord{}, err
	}
	return countRecord{Hash: hash, Count: uint32(count)}, nil
}

// nextRunPath picks the next "run-%05d.run" filename in dir that doesn't
// already exist, scanning existing entries once rather than keeping
// cross-process counter state.
func nextRunPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	n := 1
	for _, e := range entries {
		var id int
		if _, err := fmt.Sscanf(e.Name(), "run-%05d.run", &id); err == nil && id >= n {
			n = id + 1
		}
	}
	return filepath.Join(dir, fmt.Sprintf("run-%05d.run", n)), nil
}
