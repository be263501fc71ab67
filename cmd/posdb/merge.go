package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Priyanshu23/posdbgo/merge"
	"github.com/Priyanshu23/posdbgo/runfile"
	"github.com/Priyanshu23/posdbgo/span"
)

// spanSource adapts a sealed run's data span to merge.Source, reading it
// sequentially front to back.
type spanSource struct {
	data *span.Immutable[countRecord]
	pos  int
}

func (s *spanSource) Next() (countRecord, bool, error) {
	if s.pos >= s.data.Len() {
		var zero countRecord
		return zero, false, nil
	}
	v, err := s.data.At(s.pos)
	if err != nil {
		return countRecord{}, false, err
	}
	s.pos++
	return v, true, nil
}

// runMerge k-way-merges a set of sealed runs into one, combining records
// that share a key across runs (memtable already combines duplicates
// within a single run, but a key can recur across runs sealed from
// different ingest batches).
func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	runsFlag := fs.String("runs", "", "comma-separated run file paths to merge")
	dir := fs.String("dir", "", "merge every *.run file found in this directory instead of -runs")
	out := fs.String("out", "", "output run file path")
	configPath := addConfigFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("-out is required")
	}

	rt, err := openRoot(*configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	paths, err := resolveRunPaths(*runsFlag, *dir)
	if err != nil {
		return err
	}
	if len(paths) < 2 {
		return fmt.Errorf("need at least 2 run files to merge, got %d", len(paths))
	}

	readers := make([]*runfile.Reader[countRecord, uint64], 0, len(paths))
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	sources := make([]merge.Source[countRecord], 0, len(paths))
	for _, p := range paths {
		r, err := openRun(p)
		if err != nil {
			return fmt.Errorf("open %s: %w", p, err)
		}
		readers = append(readers, r)
		sources = append(sources, &spanSource{data: r.Data})
	}

	estimated := 0
	for _, r := range readers {
		estimated += r.Data.Len()
	}

	w, err := runfile.NewWriter[countRecord, uint64](*out, countRecordCodec{}, hashCodec{}, cmpHash, runfile.Options{
		BufElements:             rt.opts.IndexBuilderBufferSize,
		MaxEntriesInRange:       rt.opts.MaxNumEntriesInRange,
		DigestExpectedElements:  digestElements(rt.opts.RunDigest, estimated),
		DigestFalsePositiveRate: 0.01,
	})
	if err != nil {
		return err
	}

	var pending countRecord
	havePending := false
	sink := func(rec countRecord) error {
		if havePending && pending.Hash == rec.Hash {
			pending = combineCount(pending, rec)
			return nil
		}
		if havePending {
			if err := w.Append(pending); err != nil {
				return err
			}
		}
		pending, havePending = rec, true
		return nil
	}

	sizes := make([]int64, len(readers))
	for i, r := range readers {
		sizes[i] = int64(r.Data.Len())
	}
	total := merge.AssessWork(sizes)

	less := func(a, b countRecord) bool { return a.Hash < b.Hash }
	cb := merge.Callbacks{
		OnPassFinished: func(passID int) {
			fmt.Fprintf(os.Stderr, "merge pass %d done (%d source records)\n", passID, total)
		},
	}
	if err := merge.Merge(sources, less, rt.opts.MergeMaxBatchSize, cb, sink); err != nil {
		return err
	}
	if havePending {
		if err := w.Append(pending); err != nil {
			return err
		}
	}

	sealed, err := w.Finish()
	if err != nil {
		return err
	}
	defer sealed.Close()

	fmt.Fprintf(os.Stdout, "merged %d runs into %s\n", len(paths), *out)
	return nil
}

func resolveRunPaths(runsFlag, dir string) ([]string, error) {
	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(dir, "*.run"))
		if err != nil {
			return nil, err
		}
		return matches, nil
	}
	if runsFlag == "" {
		return nil, fmt.Errorf("either -runs or -dir must be given")
	}
	var paths []string
	for _, p := range strings.Split(runsFlag, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}
