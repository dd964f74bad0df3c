package adapter

// Valid is the bit-pattern validator shared by all container kinds: it
// rejects an implausibly large element count and a front address the
// probe does not consider mapped. A passing result is necessary but not
// sufficient; at crash time the candidate may be uninitialized stack or
// heap memory whose bit pattern happens to look sane.
func Valid(probe Probe, front, count uint64, l Layout) bool {
	// element count is unbelievably high; assume garbage
	if count > l.MaxPlausibleCount {
		return false
	}
	if !probeOK(probe, front) {
		return false
	}
	return true
}
