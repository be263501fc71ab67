// Package config holds the engine's tunable knobs: pool/thread-pool
// sizing, merge batching, and search windowing. Loading is a thin JSON
// decode — posdbgo has no dedicated config-loading dependency, matching
// the teacher's own plain-struct-plus-functional-options approach to
// configuration.
package config

import (
	"encoding/json"
	"io"

	"github.com/Priyanshu23/posdbgo/extfile"
)

// Options collects every tunable named in the external interface: file
// pool sizing, thread pool placement, merge batching and buffering, and
// equal-range search windowing.
type Options struct {
	MaxConcurrentOpenPooledFiles   int `json:"max_concurrent_open_pooled_files"`
	MaxConcurrentOpenUnpooledFiles int64 `json:"max_concurrent_open_unpooled_files"`
	DefaultThreadPoolThreads       int `json:"default_thread_pool_threads"`
	ThreadPools                   []extfile.ThreadPoolSpec `json:"thread_pools"`

	MergeOutputBufferSize      int `json:"merge_output_buffer_size"`
	MergeInputBufferSize       int `json:"merge_input_buffer_size"`
	MergeMaxBatchSize          int `json:"merge_max_batch_size"`
	PriorityQueueMergeThreshold int `json:"priority_queue_merge_threshold"`

	EqualRangeMaxRandomReadSize int `json:"equal_range_max_random_read_size"`
	IndexBuilderBufferSize      int `json:"index_builder_buffer_size"`
	MaxNumEntriesInRange        int `json:"max_num_entries_in_range"`

	// RunDigest enables the optional per-run bloom filter digest
	// described alongside the domain-stack additions: when set, sealed
	// runs carry a companion bloom.BloomFilter the search consults
	// before doing any windowed I/O.
	RunDigest bool `json:"run_digest"`
}

// Default returns the engine's out-of-the-box tuning.
func Default() Options {
	return Options{
		MaxConcurrentOpenPooledFiles:   64,
		MaxConcurrentOpenUnpooledFiles: 16,
		DefaultThreadPoolThreads:       4,

		MergeOutputBufferSize:      1 << 20,
		MergeInputBufferSize:       1 << 16,
		MergeMaxBatchSize:          16,
		PriorityQueueMergeThreshold: 24,

		EqualRangeMaxRandomReadSize: 1 << 16,
		IndexBuilderBufferSize:      4096,
		MaxNumEntriesInRange:        128,

		RunDigest: false,
	}
}

// FromJSON decodes Options from r, starting from Default() so an
// incomplete document only overrides the fields it names.
func FromJSON(r io.Reader) (Options, error) {
	opts := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
