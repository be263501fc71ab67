// Command posdb is a thin CLI facade over the storage engine: ingest
// durably appends key/count records and flushes them as a sorted run,
// merge k-way-combines a set of runs into one, query answers a batch of
// equal-range lookups against a run, and list inspects run files through
// the pooled file handle cache. The engine is generic over
// record.Record[K]; this facade fixes one concrete demonstration record
// (see record.go) rather than exposing the generic API directly, the
// same role the teacher's bare main.go DB interface would have played
// had it been wired up to something concrete.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Priyanshu23/posdbgo/config"
	"github.com/Priyanshu23/posdbgo/extfile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "ingest":
		err = runIngest(args)
	case "merge":
		err = runMerge(args)
	case "query":
		err = runQuery(args)
	case "list":
		err = runList(args)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "posdb: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "posdb %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: posdb <ingest|merge|query|list> [flags]")
}

// root bundles the resources every subcommand opens against a data
// directory: the loaded tuning Options plus a pooled file handle cache
// and thread pool registry sized from them — the "pooled file system
// root" the facade is built around.
type root struct {
	opts     config.Options
	pool     *extfile.Pool
	registry *extfile.ThreadPoolRegistry
}

func openRoot(configPath string) (*root, error) {
	opts := config.Default()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		opts, err = config.FromJSON(f)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	return &root{
		opts:     opts,
		pool:     extfile.NewPool(opts.MaxConcurrentOpenPooledFiles),
		registry: extfile.NewThreadPoolRegistry(opts.ThreadPools, opts.DefaultThreadPoolThreads),
	}, nil
}

func (r *root) Close() {
	r.pool.Close()
	r.registry.Close()
}

func addConfigFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "", "path to a JSON config file overriding the defaults (see config.Options)")
}
