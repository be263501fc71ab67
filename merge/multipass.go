package merge

// Merge drives a full multi-pass external merge: as long as more than one
// run remains, it groups runs into batches of at most maxBatchSize,
// k-way-merges each batch (via MergeForEach) into one intermediate run,
// and repeats, firing cb.OnPassFinished after each pass completes — until
// a single run remains, which is streamed to sink.
//
// The directories named by a Plan are a placement concern for a
// file-backed caller (where to write each pass's intermediate runs); this
// in-memory driver takes materialized intermediate runs directly, so
// callers that do spill to disk between passes wrap each pass's output in
// a Source that reads back from whatever path they chose via Plan.
func Merge[T any](sources []Source[T], less func(a, b T) bool, maxBatchSize int, cb Callbacks, sink func(T) error) error {
	if maxBatchSize < 2 {
		maxBatchSize = 2
	}

	current := sources
	passID := 0
	for len(current) > 1 {
		var next []Source[T]
		for start := 0; start < len(current); start += maxBatchSize {
			end := start + maxBatchSize
			if end > len(current) {
				end = len(current)
			}
			batch := current[start:end]

			var merged []T
			err := MergeForEach(batch, less, func(v T) error {
				merged = append(merged, v)
				return nil
			})
			if err != nil {
				return err
			}
			next = append(next, NewSliceSource(merged))
		}

		current = next
		if cb.OnPassFinished != nil {
			cb.OnPassFinished(passID)
		}
		passID++
	}

	if len(current) == 0 {
		return nil
	}
	return MergeForEach(current, less, sink)
}

// AssessWork sums the element counts of every source's backing data, used
// to report Progress.Total before a Merge call — callers with
// file-backed sources should sum byte sizes instead.
func AssessWork(sizes []int64) int64 {
	var total int64
	for _, s := range sizes {
		total += s
	}
	return total
}
