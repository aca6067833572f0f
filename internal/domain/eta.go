package domain

import "time"

// etaTracker maintains a running mean of per-archive processing time and
// projects it over the remaining unprocessed count.
type etaTracker struct {
	total   time.Duration
	samples int
}

func newETATracker() *etaTracker {
	return &etaTracker{}
}

// Observe records the wall time one archive took.
func (e *etaTracker) Observe(d time.Duration) {
	e.total += d
	e.samples++
}

// Mean returns the average observed duration, zero before any sample.
func (e *etaTracker) Mean() time.Duration {
	if e.samples == 0 {
		return 0
	}

	return e.total / time.Duration(e.samples)
}

// Estimate projects the mean over the remaining count.
func (e *etaTracker) Estimate(remaining int) time.Duration {
	if remaining <= 0 {
		return 0
	}

	return e.Mean() * time.Duration(remaining)
}
