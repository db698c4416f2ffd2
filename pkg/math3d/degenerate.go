package math3d

import "sync/atomic"

var degenerateCount atomic.Int64

// Degenerate reports a numerical degeneracy such as normalising a
// zero-length vector. Builds tagged lumendebug panic with op; release
// builds count the event so the caller can clamp and carry on.
func Degenerate(op string) {
	degenerateCount.Add(1)
	if debugChecks {
		panic("math3d: degenerate " + op)
	}
}

// DegenerateCount returns how many degeneracies have been reported since
// process start or the last ResetDegenerateCount.
func DegenerateCount() int64 {
	return degenerateCount.Load()
}

// ResetDegenerateCount zeroes the counter.
func ResetDegenerateCount() {
	degenerateCount.Store(0)
}

// DebugChecks reports whether this binary was built with -tags lumendebug.
func DebugChecks() bool {
	return debugChecks
}
