// ABOUTME: Exercise catalog models: ExerciseType, DistanceUnit, ExerciseDefinition, WorkoutType.
// ABOUTME: Definitions are the catalog entries exercise records are instantiated from.
package models

import (
	"strings"
	"time"
)

// ExerciseType determines which payload shape an exercise record carries.
type ExerciseType string

const (
	ExerciseSetsReps ExerciseType = "SETS_REPS"
	ExerciseSetsTime ExerciseType = "SETS_TIME"
	ExerciseDistance ExerciseType = "DISTANCE"
)

// AllExerciseTypes returns all valid exercise types.
var AllExerciseTypes = []ExerciseType{ExerciseSetsReps, ExerciseSetsTime, ExerciseDistance}

// IsValidExerciseType checks if a string is a valid exercise type.
func IsValidExerciseType(s string) bool {
	for _, et := range AllExerciseTypes {
		if string(et) == s {
			return true
		}
	}
	return false
}

// ParseExerciseType accepts any casing and '-' in place of '_'.
func ParseExerciseType(s string) (ExerciseType, bool) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if !IsValidExerciseType(norm) {
		return "", false
	}
	return ExerciseType(norm), true
}

// IsSetBased reports whether records of this type carry sets.
func (t ExerciseType) IsSetBased() bool {
	return t == ExerciseSetsReps || t == ExerciseSetsTime
}

// DistanceUnit is the unit a distance exercise was recorded in.
type DistanceUnit string

const (
	UnitMeters     DistanceUnit = "METERS"
	UnitKilometers DistanceUnit = "KILOMETERS"
	UnitMiles      DistanceUnit = "MILES"
)

// metersPerUnit maps units to their length in meters.
var metersPerUnit = map[DistanceUnit]float64{
	UnitMeters:     1,
	UnitKilometers: 1000,
	UnitMiles:      1609.344,
}

// unitAliases maps the short forms accepted on the command line.
var unitAliases = map[string]DistanceUnit{
	"m":          UnitMeters,
	"meters":     UnitMeters,
	"km":         UnitKilometers,
	"kilometers": UnitKilometers,
	"mi":         UnitMiles,
	"miles":      UnitMiles,
}

// IsValidDistanceUnit checks if a string is a valid distance unit.
func IsValidDistanceUnit(s string) bool {
	_, ok := metersPerUnit[DistanceUnit(s)]
	return ok
}

// ParseDistanceUnit accepts canonical names and short forms (m, km, mi).
func ParseDistanceUnit(s string) (DistanceUnit, bool) {
	s = strings.TrimSpace(s)
	if IsValidDistanceUnit(strings.ToUpper(s)) {
		return DistanceUnit(strings.ToUpper(s)), true
	}
	u, ok := unitAliases[strings.ToLower(s)]
	return u, ok
}

// Meters converts a distance in this unit to meters.
func (u DistanceUnit) Meters(distance float64) float64 {
	return distance * metersPerUnit[u]
}

// ExerciseDefinition is a catalog entry: a named exercise of a fixed type.
type ExerciseDefinition struct {
	ID        int64        `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Type      ExerciseType `json:"type" yaml:"type"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
}

// NewExerciseDefinition creates an unsaved definition.
func NewExerciseDefinition(name string, exerciseType ExerciseType) *ExerciseDefinition {
	return &ExerciseDefinition{
		Name:      strings.TrimSpace(name),
		Type:      exerciseType,
		CreatedAt: time.Now(),
	}
}

// WorkoutType is a named category of workout ("Push Day", "Run").
type WorkoutType struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
