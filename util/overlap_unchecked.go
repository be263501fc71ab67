//go:build posdb_fast

package util

// checkNonOverlapping is a no-op under posdb_fast: the caller has already
// verified the layout and wants to skip the per-construction check.
func checkNonOverlapping(spans []BitSpan) {}
