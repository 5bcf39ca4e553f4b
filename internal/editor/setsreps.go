// ABOUTME: Editor for repetition-and-weight exercises.
// ABOUTME: Buffers text input and applies it to the set on commit.
package editor

import (
	"strings"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
)

// SetsRepsEditor edits SETS_REPS exercises.
type SetsRepsEditor struct {
	s       *session.Session
	reps    string
	weight  string
	partial string
	failure bool
}

// NewSetsReps returns an editor bound to s.
func NewSetsReps(s *session.Session) *SetsRepsEditor {
	return &SetsRepsEditor{s: s}
}

// Type reports SETS_REPS.
func (e *SetsRepsEditor) Type() models.ExerciseType { return models.ExerciseSetsReps }

// StartSet begins a set on the session.
func (e *SetsRepsEditor) StartSet() error { return e.s.StartSet() }

// EndSet stops the running set. Reps and weight can still be edited.
func (e *SetsRepsEditor) EndSet() error { return e.s.EndSet() }

// SetReps buffers the repetition count as typed.
func (e *SetsRepsEditor) SetReps(text string) { e.reps = strings.TrimSpace(text) }

// SetWeight buffers the weight in kilograms as typed.
func (e *SetsRepsEditor) SetWeight(text string) { e.weight = strings.TrimSpace(text) }

// SetPartialReps records partial repetitions. They only apply to a failed set.
func (e *SetsRepsEditor) SetPartialReps(text string) { e.partial = strings.TrimSpace(text) }

// SetFailure marks the set as taken to failure. Clearing it drops any
// partial repetitions.
func (e *SetsRepsEditor) SetFailure(failed bool) {
	e.failure = failed
	if !failed {
		e.partial = ""
	}
}

// CommitSet parses the buffers, applies them to the active set and commits
// it. The weight buffer carries over to the next set.
func (e *SetsRepsEditor) CommitSet() error {
	reps, err := parseCount("reps", e.reps)
	if err != nil {
		return err
	}
	weight, err := parseAmount("weight", e.weight)
	if err != nil {
		return err
	}
	u := session.SetUpdate{
		Repetitions: &reps,
		WeightKg:    &weight,
		IsFailure:   &e.failure,
	}
	if e.partial != "" {
		if !e.failure {
			return session.ValidationError("partial reps only apply to a failed set")
		}
		partial, err := parseCount("partial reps", e.partial)
		if err != nil {
			return err
		}
		u.PartialRepetitions = &partial
	}

	if err := e.s.UpdateSet(u); err != nil {
		return err
	}
	if err := e.s.CommitSet(); err != nil {
		return err
	}
	e.reps, e.partial, e.failure = "", "", false
	return nil
}

// Complete finishes the exercise once at least one set is committed.
func (e *SetsRepsEditor) Complete() error { return completeSetBased(e.s) }

// Render returns the pending set buffers over the session view.
func (e *SetsRepsEditor) Render() EditorView {
	ev, _ := baseView(e.s)
	ev.Reps = e.reps
	ev.Weight = e.weight
	ev.PartialReps = e.partial
	failure := e.failure
	ev.Failure = &failure
	return ev
}
