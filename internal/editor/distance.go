// ABOUTME: Editor for distance exercises, which have no sets.
// ABOUTME: Completing records the distance and restarts rest in one step.
package editor

import (
	"strconv"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
)

// DistanceEditor edits DISTANCE exercises.
type DistanceEditor struct {
	s        *session.Session
	distance string
	unit     models.DistanceUnit
}

// NewDistance returns an editor bound to s, seeded from whatever is already
// recorded on the active exercise.
func NewDistance(s *session.Session) *DistanceEditor {
	e := &DistanceEditor{s: s, unit: models.UnitKilometers}
	if v := s.View(); v.ActiveExercise != nil {
		if dp, ok := v.ActiveExercise.Distance(); ok {
			if dp.Unit != "" {
				e.unit = dp.Unit
			}
			if dp.Distance > 0 {
				e.distance = strconv.FormatFloat(dp.Distance, 'f', -1, 64)
			}
		}
	}
	return e
}

// Type reports DISTANCE.
func (e *DistanceEditor) Type() models.ExerciseType { return models.ExerciseDistance }

// SetDistance buffers the distance as typed. It is parsed on Complete.
func (e *DistanceEditor) SetDistance(text string) { e.distance = text }

// SetUnit accepts unit names and common abbreviations.
func (e *DistanceEditor) SetUnit(text string) error {
	u, ok := models.ParseDistanceUnit(text)
	if !ok {
		return session.ValidationError("unknown distance unit %q", text)
	}
	e.unit = u
	return nil
}

// Complete validates the distance, records it and completes the exercise.
func (e *DistanceEditor) Complete() error {
	d, err := parseAmount("distance", e.distance)
	if err != nil {
		return err
	}
	if d <= 0 {
		return session.ValidationError("distance must be greater than zero")
	}
	if err := e.s.RecordDistance(d, e.unit); err != nil {
		return err
	}
	return e.s.CompleteExercise()
}

// Render returns the distance buffer and unit over the session view.
func (e *DistanceEditor) Render() EditorView {
	ev, v := baseView(e.s)
	ev.Distance = e.distance
	ev.DistanceUnit = string(e.unit)
	if v.ActiveExercise != nil {
		if dp, ok := v.ActiveExercise.Distance(); ok {
			ev.RestBefore = session.FormatDuration(dp.RestBeforeMs)
		}
	}
	return ev
}
