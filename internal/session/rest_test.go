// ABOUTME: Tests for RestInterval arithmetic.
// ABOUTME: Covers start, pause, resume, and derived totals.
package session

import (
	"testing"
	"time"
)

var base = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

func at(ms int64) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

func TestRestIntervalTotals(t *testing.T) {
	tests := []struct {
		name  string
		steps func(r *RestInterval)
		now   int64
		want  int64
	}{
		{
			name:  "zero value",
			steps: func(r *RestInterval) {},
			now:   5000,
			want:  0,
		},
		{
			name:  "running",
			steps: func(r *RestInterval) { r.Start(at(1000)) },
			now:   4000,
			want:  3000,
		},
		{
			name: "paused",
			steps: func(r *RestInterval) {
				r.Start(at(0))
				r.Pause(at(2500))
			},
			now:  9000,
			want: 2500,
		},
		{
			name: "resumed accrues on top",
			steps: func(r *RestInterval) {
				r.Start(at(0))
				r.Pause(at(2000))
				r.Resume(at(5000))
			},
			now:  6000,
			want: 3000,
		},
		{
			name: "start discards banked rest",
			steps: func(r *RestInterval) {
				r.Start(at(0))
				r.Pause(at(2000))
				r.Start(at(3000))
			},
			now:  3500,
			want: 500,
		},
		{
			name: "double pause is a no-op",
			steps: func(r *RestInterval) {
				r.Start(at(0))
				r.Pause(at(1000))
				r.Pause(at(8000))
			},
			now:  9000,
			want: 1000,
		},
		{
			name: "resume while active keeps original start",
			steps: func(r *RestInterval) {
				r.Start(at(0))
				r.Resume(at(4000))
			},
			now:  5000,
			want: 5000,
		},
		{
			name: "clock behind start clamps to zero",
			steps: func(r *RestInterval) {
				r.Start(at(5000))
			},
			now:  1000,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RestInterval
			tt.steps(&r)
			if got := r.TotalMs(at(tt.now)); got != tt.want {
				t.Errorf("TotalMs = %d, want %d", got, tt.want)
			}
			if r.IsActive && r.ActiveSince == nil {
				t.Error("active interval has no start timestamp")
			}
		})
	}
}

func TestRestIntervalReset(t *testing.T) {
	var r RestInterval
	r.Start(at(0))
	r.Pause(at(1000))
	r.Reset()

	if r.IsActive || r.AccumulatedMs != 0 || r.ActiveSince != nil {
		t.Errorf("Reset left state behind: %+v", r)
	}
}
