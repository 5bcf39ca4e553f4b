// ABOUTME: SetRecord and ExerciseRecord value types for an in-progress or finished workout.
// ABOUTME: ExerciseRecord carries a tagged payload: sets for SETS_*, distance for DISTANCE.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SetRecord is one set of a set-based exercise.
// RestBeforeMs is frozen when the set starts and never recomputed.
type SetRecord struct {
	OrderIndex         int        `json:"order_index"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	IsFailure          bool       `json:"is_failure"`
	Repetitions        *int       `json:"repetitions,omitempty"`
	PartialRepetitions *int       `json:"partial_repetitions,omitempty"`
	WeightKg           *float64   `json:"weight_kg,omitempty"`
	RestBeforeMs       int64      `json:"rest_before_ms"`
}

// DurationMs returns the set's length, or 0 while it is still running.
func (s *SetRecord) DurationMs() int64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Milliseconds()
}

// Clone returns a deep copy.
func (s SetRecord) Clone() SetRecord {
	c := s
	if s.EndTime != nil {
		t := *s.EndTime
		c.EndTime = &t
	}
	if s.Repetitions != nil {
		v := *s.Repetitions
		c.Repetitions = &v
	}
	if s.PartialRepetitions != nil {
		v := *s.PartialRepetitions
		c.PartialRepetitions = &v
	}
	if s.WeightKg != nil {
		v := *s.WeightKg
		c.WeightKg = &v
	}
	return c
}

// Payload is the type-specific part of an ExerciseRecord.
// Only *SetsPayload and *DistancePayload implement it.
type Payload interface {
	isPayload()
	clone() Payload
}

// SetsPayload holds the committed sets of a SETS_REPS or SETS_TIME exercise.
type SetsPayload struct {
	Sets []SetRecord `json:"sets"`
}

func (*SetsPayload) isPayload() {}

func (p *SetsPayload) clone() Payload {
	c := &SetsPayload{Sets: make([]SetRecord, len(p.Sets))}
	for i, s := range p.Sets {
		c.Sets[i] = s.Clone()
	}
	return c
}

// DistancePayload holds the result of a DISTANCE exercise.
// RestBeforeMs is the rest total observed when the exercise was selected.
type DistancePayload struct {
	Distance     float64      `json:"distance"`
	Unit         DistanceUnit `json:"distance_unit"`
	RestBeforeMs int64        `json:"rest_before_ms"`
}

func (*DistancePayload) isPayload() {}

func (p *DistancePayload) clone() Payload {
	c := *p
	return &c
}

// ExerciseRecord is one exercise instance within a workout.
type ExerciseRecord struct {
	DefinitionID int64
	Name         string
	Type         ExerciseType
	StartTime    time.Time
	EndTime      *time.Time
	OrderIndex   int
	Payload      Payload
}

// NewExerciseRecord instantiates a record from a definition with the
// payload shape its type requires.
func NewExerciseRecord(def ExerciseDefinition, orderIndex int, start time.Time) (*ExerciseRecord, error) {
	var payload Payload
	switch def.Type {
	case ExerciseSetsReps, ExerciseSetsTime:
		payload = &SetsPayload{Sets: []SetRecord{}}
	case ExerciseDistance:
		payload = &DistancePayload{Unit: UnitKilometers}
	default:
		return nil, fmt.Errorf("unknown exercise type: %q", def.Type)
	}
	return &ExerciseRecord{
		DefinitionID: def.ID,
		Name:         def.Name,
		Type:         def.Type,
		StartTime:    start,
		OrderIndex:   orderIndex,
		Payload:      payload,
	}, nil
}

// Sets returns the sets payload when the record is set-based.
func (e *ExerciseRecord) Sets() (*SetsPayload, bool) {
	p, ok := e.Payload.(*SetsPayload)
	return p, ok
}

// Distance returns the distance payload when the record is a DISTANCE exercise.
func (e *ExerciseRecord) Distance() (*DistancePayload, bool) {
	p, ok := e.Payload.(*DistancePayload)
	return p, ok
}

// AverageRestMs averages RestBeforeMs over every set after the first.
// The first set's rest belongs to the gap before the exercise.
func (e *ExerciseRecord) AverageRestMs() float64 {
	sp, ok := e.Sets()
	if !ok || len(sp.Sets) < 2 {
		return 0
	}
	var total int64
	for _, s := range sp.Sets[1:] {
		total += s.RestBeforeMs
	}
	return float64(total) / float64(len(sp.Sets)-1)
}

// DurationMs returns the exercise length, or 0 while it is in progress.
func (e *ExerciseRecord) DurationMs() int64 {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime).Milliseconds()
}

// Clone returns a deep copy, including the payload.
func (e *ExerciseRecord) Clone() ExerciseRecord {
	c := *e
	if e.EndTime != nil {
		t := *e.EndTime
		c.EndTime = &t
	}
	if e.Payload != nil {
		c.Payload = e.Payload.clone()
	}
	return c
}

type exerciseRecordJSON struct {
	DefinitionID int64           `json:"exercise_definition_id"`
	Name         string          `json:"name"`
	Type         ExerciseType    `json:"type"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      *time.Time      `json:"end_time,omitempty"`
	OrderIndex   int             `json:"order_index"`
	Details      json.RawMessage `json:"details"`
}

type detailsJSON struct {
	Sets         *[]SetRecord  `json:"sets,omitempty"`
	Distance     *float64      `json:"distance,omitempty"`
	Unit         *DistanceUnit `json:"distance_unit,omitempty"`
	RestBeforeMs int64         `json:"rest_before_ms,omitempty"`
}

// MarshalJSON writes the payload under "details".
func (e ExerciseRecord) MarshalJSON() ([]byte, error) {
	var details []byte
	var err error
	if e.Payload == nil {
		details = []byte("null")
	} else {
		details, err = json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(exerciseRecordJSON{
		DefinitionID: e.DefinitionID,
		Name:         e.Name,
		Type:         e.Type,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		OrderIndex:   e.OrderIndex,
		Details:      details,
	})
}

// UnmarshalJSON decodes "details" into the payload matching "type" and
// rejects details belonging to the other shape.
func (e *ExerciseRecord) UnmarshalJSON(data []byte) error {
	var raw exerciseRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var d detailsJSON
	if len(raw.Details) > 0 && string(raw.Details) != "null" {
		if err := json.Unmarshal(raw.Details, &d); err != nil {
			return fmt.Errorf("decode details: %w", err)
		}
	}

	var payload Payload
	switch raw.Type {
	case ExerciseSetsReps, ExerciseSetsTime:
		if d.Distance != nil || d.Unit != nil {
			return fmt.Errorf("%s exercise %q must not carry distance", raw.Type, raw.Name)
		}
		sp := &SetsPayload{Sets: []SetRecord{}}
		if d.Sets != nil {
			sp.Sets = *d.Sets
		}
		payload = sp
	case ExerciseDistance:
		if d.Sets != nil {
			return fmt.Errorf("DISTANCE exercise %q must not carry sets", raw.Name)
		}
		dp := &DistancePayload{RestBeforeMs: d.RestBeforeMs}
		if d.Distance != nil {
			dp.Distance = *d.Distance
		}
		if d.Unit != nil {
			if !IsValidDistanceUnit(string(*d.Unit)) {
				return fmt.Errorf("unknown distance unit: %q", *d.Unit)
			}
			dp.Unit = *d.Unit
		}
		payload = dp
	default:
		return fmt.Errorf("unknown exercise type: %q", raw.Type)
	}

	*e = ExerciseRecord{
		DefinitionID: raw.DefinitionID,
		Name:         raw.Name,
		Type:         raw.Type,
		StartTime:    raw.StartTime,
		EndTime:      raw.EndTime,
		OrderIndex:   raw.OrderIndex,
		Payload:      payload,
	}
	return nil
}
