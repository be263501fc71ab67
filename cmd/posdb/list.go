package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// runList reports each *.run file's size under dir, reusing the root's
// pooled file handle cache instead of opening each file independently —
// exercising the same LRU handle cache a long-lived server process would
// share across many ingest/merge/query calls against the same data root.
func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dir := fs.String("dir", "", "directory of *.run files to list")
	configPath := addConfigFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("-dir is required")
	}

	rt, err := openRoot(*configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	matches, err := filepath.Glob(filepath.Join(*dir, "*.run"))
	if err != nil {
		return err
	}

	for _, path := range matches {
		pf := rt.pool.Open(path, os.O_RDONLY, 0)
		var size int64
		err := pf.WithHandle(func(f *os.File) error {
			info, err := f.Stat()
			if err != nil {
				return err
			}
			size = info.Size()
			return nil
		})
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		fmt.Fprintf(os.Stdout, "%s\t%d bytes\n", path, size)
	}
	return nil
}
