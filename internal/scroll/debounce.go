package scroll

import "time"

// DefaultQuiet is how long the wheel must be idle before a burst becomes one step.
const DefaultQuiet = 100 * time.Millisecond

// Debouncer collapses a burst of wheel events into the last one, released once no
// event has arrived for the quiet interval. It is polled from the frame loop rather
// than firing on a timer goroutine, so at most one step runs per quiet period and
// it always runs on the caller's thread.
type Debouncer struct {
	quiet    time.Duration
	pending  WheelEvent
	deadline time.Time
	armed    bool
}

// NewDebouncer returns a debouncer with the given quiet interval (DefaultQuiet if <= 0).
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Quiet returns the configured quiet interval.
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

// Push replaces any pending event with ev and reschedules release to now+quiet.
// A pending event whose quiet period already ended before now was never part of
// this burst; it is returned with released true instead of being replaced.
func (d *Debouncer) Push(ev WheelEvent, now time.Time) (due WheelEvent, released bool) {
	if d.armed && !now.Before(d.deadline) {
		due, released = d.pending, true
	}
	d.pending = ev
	d.deadline = now.Add(d.quiet)
	d.armed = true
	return due, released
}

// Pending reports whether an event is waiting for its quiet period.
func (d *Debouncer) Pending() bool {
	return d.armed
}

// Deadline returns when the pending event will be released. Zero if nothing is pending.
func (d *Debouncer) Deadline() time.Time {
	if !d.armed {
		return time.Time{}
	}
	return d.deadline
}

// Poll returns the pending event once its quiet period has elapsed.
func (d *Debouncer) Poll(now time.Time) (WheelEvent, bool) {
	if !d.armed || now.Before(d.deadline) {
		return WheelEvent{}, false
	}
	d.armed = false
	return d.pending, true
}

// Cancel drops the pending event, if any.
func (d *Debouncer) Cancel() {
	d.armed = false
	d.pending = WheelEvent{}
}
