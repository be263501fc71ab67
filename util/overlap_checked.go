//go:build !posdb_fast

package util

// checkNonOverlapping panics on overlapping bit spans. Built in by default;
// pass -tags posdb_fast to compile it out once a layout is trusted.
func checkNonOverlapping(spans []BitSpan) {
	checkNonOverlappingImpl(spans)
}
