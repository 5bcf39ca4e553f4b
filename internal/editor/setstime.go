// ABOUTME: Editor for timed set exercises such as planks or hangs.
// ABOUTME: A set can only be committed once failure has been decided.
package editor

import (
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
)

// SetsTimeEditor edits SETS_TIME exercises.
type SetsTimeEditor struct {
	s       *session.Session
	failure *bool
}

// NewSetsTime returns an editor bound to s.
func NewSetsTime(s *session.Session) *SetsTimeEditor {
	return &SetsTimeEditor{s: s}
}

// Type reports SETS_TIME.
func (e *SetsTimeEditor) Type() models.ExerciseType { return models.ExerciseSetsTime }

// StartSet begins a timed set on the session.
func (e *SetsTimeEditor) StartSet() error { return e.s.StartSet() }

// EndSet stops the timed set.
func (e *SetsTimeEditor) EndSet() error { return e.s.EndSet() }

// SetFailure records whether the set ended in failure. It must be set
// before every commit.
func (e *SetsTimeEditor) SetFailure(failed bool) { e.failure = &failed }

// CommitSet applies the failure flag and commits the active set.
func (e *SetsTimeEditor) CommitSet() error {
	if e.failure == nil {
		return session.ValidationError("say whether the set ended in failure")
	}
	if err := e.s.UpdateSet(session.SetUpdate{IsFailure: e.failure}); err != nil {
		return err
	}
	if err := e.s.CommitSet(); err != nil {
		return err
	}
	e.failure = nil
	return nil
}

// Complete finishes the exercise once at least one set is committed.
func (e *SetsTimeEditor) Complete() error { return completeSetBased(e.s) }

// Render returns the session view with the pending failure flag.
func (e *SetsTimeEditor) Render() EditorView {
	ev, _ := baseView(e.s)
	if e.failure != nil {
		f := *e.failure
		ev.Failure = &f
	}
	return ev
}
