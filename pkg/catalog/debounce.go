package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval applied to keyword input before the
// filter re-runs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback: each Schedule
// cancels the pending one, and only the last survives the quiet interval.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer builds a debouncer with the given quiet interval; a
// non-positive interval falls back to DefaultDebounce.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Schedule runs fn after the quiet interval unless superseded by a later
// Schedule or cancelled by Stop. fn runs on a timer goroutine.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.interval, func() {
		// The timer may have already fired when Stop was called; the
		// sequence check keeps superseded callbacks from running.
		d.mu.Lock()
		stale := seq != d.seq
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Stop cancels the pending callback, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
