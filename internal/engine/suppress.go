package engine

import (
	"sync"
	"sync/atomic"
)

// suppressor tracks per-fingerprint occurrence counts to detect
// duplicate storms. Counters are per-key atomics; unrelated
// fingerprints never contend.
type suppressor struct {
	threshold int64
	counters  sync.Map // fingerprint -> *atomic.Int64
}

func newSuppressor(threshold int) *suppressor {
	return &suppressor{threshold: int64(threshold)}
}

// duplicate records one non-merge sighting of fp and reports whether
// the block should be suppressed. The counter resets once it exceeds
// twice the threshold, so long-lived fingerprints cycle between
// suppressed and quiet phases instead of accumulating forever.
func (s *suppressor) duplicate(fp string) bool {
	v, _ := s.counters.LoadOrStore(fp, new(atomic.Int64))
	c := v.(*atomic.Int64)
	n := c.Add(1)
	if n > s.threshold*2 {
		c.Store(0)
	}
	return n > s.threshold
}
