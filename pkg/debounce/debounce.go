// Package debounce delays work until a burst of trigger events has quieted.
//
// Each Trigger cancels any pending scheduled call and schedules a fresh one,
// so only the last trigger in a burst (after the quiet interval) runs. This
// is the cancel-and-reschedule pattern used for resize and file-change
// handling: five triggers within the quiet window produce exactly one call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single delayed call.
// It is safe for concurrent use.
type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer with the given quiet interval.
func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run after the quiet interval, cancelling any
// previously scheduled call. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Stop cancels any pending call. A stopped Debouncer can be reused.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
