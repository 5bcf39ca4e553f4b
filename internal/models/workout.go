// ABOUTME: Workout aggregate produced when a tracking session completes.
// ABOUTME: SavedWorkout adds the storage identity assigned by the backend.
package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoExercises is returned when a workout has nothing recorded.
	ErrNoExercises = errors.New("workout has no exercises")
	// ErrEndBeforeStart is returned when a workout ends before it starts.
	ErrEndBeforeStart = errors.New("workout end time is before start time")
)

// Workout is a finished workout: an ordered list of exercises bounded by
// start and end timestamps.
type Workout struct {
	WorkoutType string           `json:"workout_type"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`
	Exercises   []ExerciseRecord `json:"exercises"`
}

// Validate checks the aggregate before it is handed to a backend.
func (w *Workout) Validate() error {
	if w.WorkoutType == "" {
		return errors.New("workout type is required")
	}
	if len(w.Exercises) == 0 {
		return ErrNoExercises
	}
	if w.EndTime.Before(w.StartTime) {
		return ErrEndBeforeStart
	}
	for i := range w.Exercises {
		e := &w.Exercises[i]
		if e.EndTime == nil {
			return fmt.Errorf("exercise %q has no end time", e.Name)
		}
		if e.Payload == nil {
			return fmt.Errorf("exercise %q has no details", e.Name)
		}
		if _, isSets := e.Sets(); isSets != e.Type.IsSetBased() {
			return fmt.Errorf("exercise %q details do not match type %s", e.Name, e.Type)
		}
	}
	return nil
}

// Normalize sorts exercises by OrderIndex and pushes EndTime out to the
// last exercise's end if that is later.
func (w *Workout) Normalize() {
	sort.SliceStable(w.Exercises, func(i, j int) bool {
		return w.Exercises[i].OrderIndex < w.Exercises[j].OrderIndex
	})
	if n := len(w.Exercises); n > 0 {
		if last := w.Exercises[n-1].EndTime; last != nil && last.After(w.EndTime) {
			w.EndTime = *last
		}
	}
}

// DurationMs returns the workout length in milliseconds.
func (w *Workout) DurationMs() int64 {
	return w.EndTime.Sub(w.StartTime).Milliseconds()
}

// SetCount returns the number of committed sets across all exercises.
func (w *Workout) SetCount() int {
	n := 0
	for i := range w.Exercises {
		if sp, ok := w.Exercises[i].Sets(); ok {
			n += len(sp.Sets)
		}
	}
	return n
}

// AverageRestMs averages between-set rest over every set-based exercise.
func (w *Workout) AverageRestMs() float64 {
	var total int64
	var n int
	for i := range w.Exercises {
		sp, ok := w.Exercises[i].Sets()
		if !ok || len(sp.Sets) < 2 {
			continue
		}
		for _, s := range sp.Sets[1:] {
			total += s.RestBeforeMs
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// SavedWorkout is a Workout acknowledged by the backend.
type SavedWorkout struct {
	ID uuid.UUID `json:"id"`
	Workout
	CreatedAt time.Time `json:"created_at"`
}

// NewSavedWorkout assigns a fresh ID to w.
func NewSavedWorkout(w Workout) *SavedWorkout {
	return &SavedWorkout{
		ID:        uuid.New(),
		Workout:   w,
		CreatedAt: time.Now(),
	}
}
