// ABOUTME: Tests for the Workout aggregate and SavedWorkout.
// ABOUTME: Validates invariants, normalization, and derived durations.
package models

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func finishedBench(order int, start, end time.Time, rests ...int64) ExerciseRecord {
	sets := make([]SetRecord, len(rests))
	for i, r := range rests {
		sets[i] = SetRecord{OrderIndex: i, StartTime: start, EndTime: ptrTime(start), RestBeforeMs: r}
	}
	return ExerciseRecord{
		DefinitionID: 1,
		Name:         "Bench",
		Type:         ExerciseSetsReps,
		StartTime:    start,
		EndTime:      ptrTime(end),
		OrderIndex:   order,
		Payload:      &SetsPayload{Sets: sets},
	}
}

func TestWorkoutValidate(t *testing.T) {
	valid := Workout{
		WorkoutType: "Push Day",
		StartTime:   t0,
		EndTime:     t0.Add(time.Hour),
		Exercises:   []ExerciseRecord{finishedBench(0, t0, t0.Add(10*time.Minute), 0)},
	}

	tests := []struct {
		name    string
		mutate  func(w *Workout)
		wantErr error
	}{
		{name: "valid", mutate: func(w *Workout) {}},
		{name: "no exercises", mutate: func(w *Workout) { w.Exercises = nil }, wantErr: ErrNoExercises},
		{name: "end before start", mutate: func(w *Workout) { w.EndTime = t0.Add(-time.Second) }, wantErr: ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid
			w.Exercises = append([]ExerciseRecord(nil), valid.Exercises...)
			tt.mutate(&w)
			err := w.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkoutValidateRejectsMismatchedPayload(t *testing.T) {
	e := finishedBench(0, t0, t0.Add(time.Minute), 0)
	e.Type = ExerciseDistance
	w := Workout{WorkoutType: "Run", StartTime: t0, EndTime: t0.Add(time.Hour), Exercises: []ExerciseRecord{e}}

	if err := w.Validate(); err == nil {
		t.Fatal("expected error for DISTANCE exercise with sets payload")
	}
}

func TestWorkoutValidateRejectsOpenExercise(t *testing.T) {
	e := finishedBench(0, t0, t0.Add(time.Minute), 0)
	e.EndTime = nil
	w := Workout{WorkoutType: "Push", StartTime: t0, EndTime: t0.Add(time.Hour), Exercises: []ExerciseRecord{e}}

	if err := w.Validate(); err == nil {
		t.Fatal("expected error for exercise without end time")
	}
}

func TestWorkoutNormalize(t *testing.T) {
	w := Workout{
		WorkoutType: "Push",
		StartTime:   t0,
		EndTime:     t0.Add(10 * time.Minute),
		Exercises: []ExerciseRecord{
			finishedBench(1, t0.Add(5*time.Minute), t0.Add(20*time.Minute), 0),
			finishedBench(0, t0, t0.Add(5*time.Minute), 0),
		},
	}

	w.Normalize()

	if w.Exercises[0].OrderIndex != 0 || w.Exercises[1].OrderIndex != 1 {
		t.Errorf("exercises not sorted by order index: %d, %d", w.Exercises[0].OrderIndex, w.Exercises[1].OrderIndex)
	}
	if !w.EndTime.Equal(t0.Add(20 * time.Minute)) {
		t.Errorf("EndTime = %v, want last exercise end", w.EndTime)
	}
	if w.DurationMs() != (20 * time.Minute).Milliseconds() {
		t.Errorf("DurationMs() = %d, want %d", w.DurationMs(), (20 * time.Minute).Milliseconds())
	}
}

func TestWorkoutAverageRest(t *testing.T) {
	w := Workout{
		Exercises: []ExerciseRecord{
			finishedBench(0, t0, t0, 0, 60000, 90000),
			finishedBench(1, t0, t0, 120000, 30000),
		},
	}

	if got := w.AverageRestMs(); got != 60000 {
		t.Errorf("AverageRestMs() = %v, want 60000", got)
	}
	if got := w.SetCount(); got != 5 {
		t.Errorf("SetCount() = %d, want 5", got)
	}
}

func TestNewSavedWorkout(t *testing.T) {
	w := Workout{WorkoutType: "run", StartTime: t0, EndTime: t0}
	saved := NewSavedWorkout(w)

	if saved.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if saved.WorkoutType != "run" {
		t.Errorf("WorkoutType = %s, want run", saved.WorkoutType)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}
