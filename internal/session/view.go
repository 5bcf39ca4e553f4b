// ABOUTME: Read-only snapshot of a session for display layers.
// ABOUTME: Durations are derived from the clock on every call and never stored.
package session

import (
	"fmt"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

// View is a detached snapshot of the session. Mutating it has no effect on
// the session.
type View struct {
	Phase          Phase                   `json:"phase"`
	WorkoutType    string                  `json:"workout_type,omitempty"`
	StartTime      time.Time               `json:"start_time,omitempty"`
	ElapsedMs      int64                   `json:"elapsed_ms"`
	ActiveExercise *models.ExerciseRecord  `json:"active_exercise,omitempty"`
	ActiveSet      *models.SetRecord       `json:"active_set,omitempty"`
	Exercises      []models.ExerciseRecord `json:"exercises"`
	RestActive     bool                    `json:"rest_active"`
	RestMs         int64                   `json:"rest_ms"`
	SetMs          int64                   `json:"set_ms"`
	Saved          *models.SavedWorkout    `json:"saved,omitempty"`
	ErrorMessage   string                  `json:"error,omitempty"`
}

// View derives a snapshot at the current clock time.
func (s *Session) View() View {
	now := s.clock.Now()
	v := View{
		Phase:       s.phase,
		WorkoutType: s.workoutType,
		StartTime:   s.startTime,
		Exercises:   make([]models.ExerciseRecord, len(s.exercises)),
		RestActive:  s.rest.IsActive,
		RestMs:      s.rest.TotalMs(now),
	}
	if s.saved != nil {
		sw := *s.saved
		sw.Exercises = make([]models.ExerciseRecord, len(s.saved.Exercises))
		for i := range s.saved.Exercises {
			sw.Exercises[i] = s.saved.Exercises[i].Clone()
		}
		v.Saved = &sw
	}
	for i := range s.exercises {
		v.Exercises[i] = s.exercises[i].Clone()
	}
	switch s.phase {
	case PhaseActive:
		v.ElapsedMs = spanMs(s.startTime, now)
	case PhaseSaving, PhaseCompleted, PhaseError:
		// The end time is fixed once the workout is handed off for saving.
		v.ElapsedMs = spanMs(s.startTime, s.endTime)
		if s.saved != nil {
			v.ElapsedMs = s.saved.DurationMs()
		}
	}
	if s.activeExercise != nil {
		rec := s.activeExercise.Clone()
		v.ActiveExercise = &rec
	}
	if s.activeSet != nil {
		set := s.activeSet.Clone()
		v.ActiveSet = &set
		if set.EndTime != nil {
			v.SetMs = set.DurationMs()
		} else {
			v.SetMs = spanMs(set.StartTime, now)
		}
	}
	if s.lastErr != nil {
		v.ErrorMessage = s.lastErr.Error()
	}
	return v
}

// ElapsedText formats the workout duration.
func (v View) ElapsedText() string { return FormatDuration(v.ElapsedMs) }

// RestText formats the current rest total.
func (v View) RestText() string { return FormatDuration(v.RestMs) }

// SetText formats the active set duration.
func (v View) SetText() string { return FormatDuration(v.SetMs) }

// FormatDuration renders milliseconds as mm:ss, or h:mm:ss from one hour.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
