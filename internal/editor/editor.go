// ABOUTME: Exercise editors that translate user input into session transitions.
// ABOUTME: Editors keep only input buffers; all timing lives in the session.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
)

// Editor is the common surface of the per-type editors.
type Editor interface {
	Type() models.ExerciseType
	Render() EditorView
	// Complete validates what was entered and completes the exercise.
	Complete() error
}

// EditorView is what a display layer draws for the active exercise. It is
// rebuilt from the session on every tick and never stored.
type EditorView struct {
	Type     models.ExerciseType `json:"type"`
	Exercise string              `json:"exercise"`

	// SetNumber is the 1-based number of the set in progress or next up.
	SetNumber     int                `json:"set_number,omitempty"`
	SetInProgress bool               `json:"set_in_progress"`
	SetEnded      bool               `json:"set_ended"`
	SetText       string             `json:"set_text,omitempty"`
	RestActive    bool               `json:"rest_active"`
	RestText      string             `json:"rest_text"`
	Sets          []models.SetRecord `json:"sets,omitempty"`

	Reps         string `json:"reps,omitempty"`
	Weight       string `json:"weight,omitempty"`
	PartialReps  string `json:"partial_reps,omitempty"`
	Failure      *bool  `json:"failure,omitempty"`
	Distance     string `json:"distance,omitempty"`
	DistanceUnit string `json:"distance_unit,omitempty"`
	RestBefore   string `json:"rest_before,omitempty"`
}

// For returns the editor matching the session's active exercise.
func For(s *session.Session) (Editor, error) {
	t, ok := s.ActiveExerciseType()
	if !ok {
		return nil, fmt.Errorf("%w: no exercise in progress", session.ErrInvalidState)
	}
	switch t {
	case models.ExerciseSetsReps:
		return NewSetsReps(s), nil
	case models.ExerciseSetsTime:
		return NewSetsTime(s), nil
	case models.ExerciseDistance:
		return NewDistance(s), nil
	default:
		return nil, fmt.Errorf("no editor for exercise type %s", t)
	}
}

// baseView fills the fields every editor shares.
func baseView(s *session.Session) (EditorView, session.View) {
	v := s.View()
	ev := EditorView{
		RestActive: v.RestActive,
		RestText:   v.RestText(),
	}
	if v.ActiveExercise == nil {
		return ev, v
	}
	ev.Type = v.ActiveExercise.Type
	ev.Exercise = v.ActiveExercise.Name
	if sets, ok := v.ActiveExercise.Sets(); ok {
		ev.Sets = sets.Sets
		ev.SetNumber = len(sets.Sets) + 1
	}
	if v.ActiveSet != nil {
		ev.SetInProgress = true
		ev.SetEnded = v.ActiveSet.EndTime != nil
		ev.SetText = v.SetText()
	}
	return ev, v
}

// completeSetBased checks a set-based exercise has something to record.
func completeSetBased(s *session.Session) error {
	v := s.View()
	if v.ActiveExercise != nil && v.ActiveSet == nil {
		if sets, ok := v.ActiveExercise.Sets(); ok && len(sets.Sets) == 0 {
			return session.ValidationError("record at least one set before finishing %s", v.ActiveExercise.Name)
		}
	}
	return s.CompleteExercise()
}

// parseCount reads a non-negative integer; empty input is zero.
func parseCount(field, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, session.ValidationError("%s must be a whole number, got %q", field, text)
	}
	if n < 0 {
		return 0, session.ValidationError("%s must not be negative", field)
	}
	return n, nil
}

// parseAmount reads a non-negative decimal, accepting a comma separator.
// Empty input is zero.
func parseAmount(field, text string) (float64, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if text == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, session.ValidationError("%s must be a number, got %q", field, text)
	}
	if f < 0 {
		return 0, session.ValidationError("%s must not be negative", field)
	}
	return f, nil
}
