package config

import (
	"strings"
	"testing"
)

func TestFromJSONOverridesOnlyNamedFields(t *testing.T) {
	opts, err := FromJSON(strings.NewReader(`{"merge_max_batch_size": 32}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if opts.MergeMaxBatchSize != 32 {
		t.Fatalf("MergeMaxBatchSize = %d, want 32", opts.MergeMaxBatchSize)
	}
	def := Default()
	if opts.MaxConcurrentOpenPooledFiles != def.MaxConcurrentOpenPooledFiles {
		t.Fatalf("unrelated field was overwritten: got %d, want %d",
			opts.MaxConcurrentOpenPooledFiles, def.MaxConcurrentOpenPooledFiles)
	}
}

func TestFromJSONRejectsMalformedInput(t *testing.T) {
	if _, err := FromJSON(strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected error decoding malformed JSON")
	}
}
