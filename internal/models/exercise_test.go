// ABOUTME: Tests for exercise catalog enums and constructors.
// ABOUTME: Validates parsing of exercise types and distance units.
package models

import (
	"testing"
)

func TestParseExerciseType(t *testing.T) {
	tests := []struct {
		input string
		want  ExerciseType
		ok    bool
	}{
		{"SETS_REPS", ExerciseSetsReps, true},
		{"sets-time", ExerciseSetsTime, true},
		{" distance ", ExerciseDistance, true},
		{"cardio", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseExerciseType(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseExerciseType(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseDistanceUnit(t *testing.T) {
	tests := []struct {
		input string
		want  DistanceUnit
		ok    bool
	}{
		{"KILOMETERS", UnitKilometers, true},
		{"km", UnitKilometers, true},
		{"mi", UnitMiles, true},
		{"meters", UnitMeters, true},
		{"yards", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDistanceUnit(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseDistanceUnit(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDistanceUnitMeters(t *testing.T) {
	if got := UnitKilometers.Meters(5); got != 5000 {
		t.Errorf("Meters(5 km) = %v, want 5000", got)
	}
	if got := UnitMiles.Meters(1); got != 1609.344 {
		t.Errorf("Meters(1 mi) = %v, want 1609.344", got)
	}
}

func TestIsSetBased(t *testing.T) {
	if !ExerciseSetsReps.IsSetBased() || !ExerciseSetsTime.IsSetBased() {
		t.Error("SETS_* types should be set based")
	}
	if ExerciseDistance.IsSetBased() {
		t.Error("DISTANCE should not be set based")
	}
}

func TestNewExerciseDefinition(t *testing.T) {
	d := NewExerciseDefinition("  Bench Press ", ExerciseSetsReps)
	if d.Name != "Bench Press" {
		t.Errorf("Name = %q, want trimmed", d.Name)
	}
	if d.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}
