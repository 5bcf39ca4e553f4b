// ABOUTME: RestInterval value type tracking rest between sets and exercises.
// ABOUTME: The running total is always derived from the stored span on read.
package session

import "time"

// RestInterval is one span of rest, possibly built from several sub-spans.
// IsActive implies ActiveSince is set. The current total is never stored.
type RestInterval struct {
	IsActive      bool       `json:"is_active"`
	AccumulatedMs int64      `json:"accumulated_ms"`
	ActiveSince   *time.Time `json:"active_since,omitempty"`
}

// Start begins a fresh rest span at now, discarding anything banked.
func (r *RestInterval) Start(now time.Time) {
	r.AccumulatedMs = 0
	r.ActiveSince = &now
	r.IsActive = true
}

// Pause folds the running span into AccumulatedMs. No-op when inactive.
func (r *RestInterval) Pause(now time.Time) {
	if !r.IsActive {
		return
	}
	r.AccumulatedMs += spanMs(*r.ActiveSince, now)
	r.ActiveSince = nil
	r.IsActive = false
}

// Resume continues accruing on top of AccumulatedMs. No-op when active.
func (r *RestInterval) Resume(now time.Time) {
	if r.IsActive {
		return
	}
	r.ActiveSince = &now
	r.IsActive = true
}

// Reset clears the interval.
func (r *RestInterval) Reset() {
	*r = RestInterval{}
}

// TotalMs returns banked rest plus the running span, if any.
func (r RestInterval) TotalMs(now time.Time) int64 {
	if !r.IsActive {
		return r.AccumulatedMs
	}
	return r.AccumulatedMs + spanMs(*r.ActiveSince, now)
}

// spanMs clamps at zero so a clock stepping backwards never produces
// negative rest.
func spanMs(from, to time.Time) int64 {
	d := to.Sub(from).Milliseconds()
	if d < 0 {
		return 0
	}
	return d
}
