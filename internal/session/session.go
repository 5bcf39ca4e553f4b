// ABOUTME: WorkoutSession state machine for a single in-progress workout.
// ABOUTME: All rest and set timing is owned here; editors only read it.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/models"
)

// Phase is the coarse lifecycle state of a session.
type Phase string

// Session phases.
const (
	PhaseSetup     Phase = "setup"
	PhaseActive    Phase = "active"
	PhaseSaving    Phase = "saving"
	PhaseCompleted Phase = "completed"
	PhaseError     Phase = "error"
)

func (p Phase) String() string { return string(p) }

// Backend persists a finished workout.
type Backend interface {
	SaveWorkout(ctx context.Context, w *models.Workout) (*models.SavedWorkout, error)
}

// SetUpdate carries the user-editable fields of a set. Nil fields are left
// untouched.
type SetUpdate struct {
	Repetitions        *int
	PartialRepetitions *int
	WeightKg           *float64
	IsFailure          *bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l.With().Str("component", "session").Logger()
	}
}

// Session tracks one workout from setup to save. It is not safe for
// concurrent use; callers own it from a single goroutine or guard it.
type Session struct {
	clock clock.Clock
	log   zerolog.Logger

	phase          Phase
	workoutType    string
	startTime      time.Time
	endTime        time.Time
	exercises      []models.ExerciseRecord
	activeExercise *models.ExerciseRecord
	activeSet      *models.SetRecord
	rest           RestInterval

	saved   *models.SavedWorkout
	lastErr error
}

// New returns a session in the setup phase.
func New(c clock.Clock, opts ...Option) *Session {
	if c == nil {
		c = clock.Real{}
	}
	s := &Session{
		clock: c,
		log:   zerolog.Nop(),
		phase: PhaseSetup,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// WorkoutType returns the workout type chosen at start.
func (s *Session) WorkoutType() string { return s.workoutType }

// Rest returns a copy of the rest interval.
func (s *Session) Rest() RestInterval { return s.rest }

// ActiveExerciseType reports the type of the in-progress exercise.
func (s *Session) ActiveExerciseType() (models.ExerciseType, bool) {
	if s.activeExercise == nil {
		return "", false
	}
	return s.activeExercise.Type, true
}

// HasActiveSet reports whether a set is in progress or awaiting commit.
func (s *Session) HasActiveSet() bool { return s.activeSet != nil }

// Saved returns the stored workout once the session has completed.
func (s *Session) Saved() *models.SavedWorkout { return s.saved }

// Now reads the session clock.
func (s *Session) Now() time.Time { return s.clock.Now() }

func (s *Session) invalid(op, reason string) error {
	err := &StateError{Op: op, Phase: s.phase, Reason: reason}
	s.log.Warn().Str("op", op).Str("phase", s.phase.String()).Msg(reason)
	return err
}

func (s *Session) requireActive(op string) error {
	if s.phase != PhaseActive {
		return s.invalid(op, "no workout in progress")
	}
	return nil
}

// StartWorkout moves the session from setup to active. A completed session
// is cleared first so the next workout can begin without an explicit reset.
func (s *Session) StartWorkout(workoutType string) error {
	const op = "start workout"
	if s.phase != PhaseSetup && s.phase != PhaseCompleted {
		return s.invalid(op, "workout already started")
	}
	workoutType = strings.TrimSpace(workoutType)
	if workoutType == "" {
		return ValidationError("workout type is required")
	}
	if s.phase == PhaseCompleted {
		s.Reset()
	}

	s.workoutType = workoutType
	s.startTime = s.clock.Now()
	s.phase = PhaseActive
	s.log.Debug().Str("op", op).Str("workout_type", workoutType).Msg("transition")
	return nil
}

// SelectExercise begins a new exercise from a catalog definition.
func (s *Session) SelectExercise(def models.ExerciseDefinition) error {
	const op = "select exercise"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeExercise != nil {
		return s.invalid(op, fmt.Sprintf("exercise %q already in progress", s.activeExercise.Name))
	}

	if strings.TrimSpace(def.Name) == "" {
		return ValidationError("exercise name is required")
	}

	now := s.clock.Now()
	rec, err := models.NewExerciseRecord(def, len(s.exercises), now)
	if err != nil {
		return ValidationError("%v", err)
	}
	if dp, ok := rec.Distance(); ok && s.rest.IsActive {
		dp.RestBeforeMs = s.rest.TotalMs(now)
	}

	s.activeExercise = rec
	s.log.Debug().Str("op", op).Str("exercise", rec.Name).Int("order", rec.OrderIndex).Msg("transition")
	return nil
}

// DiscardExercise drops the in-progress exercise without recording it.
// Rest that was paused by a discarded set resumes accruing.
func (s *Session) DiscardExercise() error {
	const op = "discard exercise"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeExercise == nil {
		return s.invalid(op, "no exercise in progress")
	}

	name := s.activeExercise.Name
	s.activeExercise = nil
	s.activeSet = nil
	s.rest.Resume(s.clock.Now())
	s.log.Debug().Str("op", op).Str("exercise", name).Msg("transition")
	return nil
}

// StartSet pauses rest and begins a set, freezing the rest taken before it.
func (s *Session) StartSet() error {
	const op = "start set"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeExercise == nil {
		return s.invalid(op, "no exercise in progress")
	}
	sets, ok := s.activeExercise.Sets()
	if !ok {
		return s.invalid(op, "distance exercises have no sets")
	}
	if s.activeSet != nil {
		return s.invalid(op, "a set is already in progress")
	}

	now := s.clock.Now()
	s.rest.Pause(now)
	s.activeSet = &models.SetRecord{
		OrderIndex:   len(sets.Sets),
		StartTime:    now,
		RestBeforeMs: s.rest.AccumulatedMs,
	}
	s.log.Debug().Str("op", op).Int64("rest_before_ms", s.activeSet.RestBeforeMs).Msg("transition")
	return nil
}

// EndSet stamps the set end and restarts rest from zero.
func (s *Session) EndSet() error {
	const op = "end set"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeSet == nil {
		return s.invalid(op, "no set in progress")
	}
	if s.activeSet.EndTime != nil {
		return s.invalid(op, "set already ended")
	}

	now := s.clock.Now()
	s.activeSet.EndTime = &now
	s.rest.Start(now)
	s.log.Debug().Str("op", op).Int64("duration_ms", s.activeSet.DurationMs()).Msg("transition")
	return nil
}

// UpdateSet edits the active set before it is committed. The last value
// written for each field wins. Repetition and weight fields are ignored for
// timed sets.
func (s *Session) UpdateSet(u SetUpdate) error {
	const op = "update set"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeSet == nil {
		return s.invalid(op, "no set in progress")
	}
	if u.Repetitions != nil && *u.Repetitions < 0 {
		return ValidationError("repetitions must not be negative")
	}
	if u.PartialRepetitions != nil && *u.PartialRepetitions < 0 {
		return ValidationError("partial repetitions must not be negative")
	}
	if u.WeightKg != nil && *u.WeightKg < 0 {
		return ValidationError("weight must not be negative")
	}

	set := s.activeSet
	if u.IsFailure != nil {
		set.IsFailure = *u.IsFailure
	}
	if s.activeExercise.Type == models.ExerciseSetsReps {
		if u.Repetitions != nil {
			set.Repetitions = intPtr(*u.Repetitions)
		}
		if u.PartialRepetitions != nil {
			set.PartialRepetitions = intPtr(*u.PartialRepetitions)
		}
		if u.WeightKg != nil {
			w := *u.WeightKg
			set.WeightKg = &w
		}
	}
	s.log.Debug().Str("op", op).Msg("transition")
	return nil
}

// CommitSet appends the ended set to the active exercise.
func (s *Session) CommitSet() error {
	const op = "commit set"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeSet == nil {
		return s.invalid(op, "no set in progress")
	}
	if s.activeSet.EndTime == nil {
		return s.invalid(op, "set has not ended")
	}

	sets, _ := s.activeExercise.Sets()
	sets.Sets = append(sets.Sets, s.activeSet.Clone())
	s.activeSet = nil
	s.log.Debug().Str("op", op).Int("sets", len(sets.Sets)).Msg("transition")
	return nil
}

// RecordDistance sets the distance and unit of the active distance exercise.
func (s *Session) RecordDistance(distance float64, unit models.DistanceUnit) error {
	const op = "record distance"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeExercise == nil {
		return s.invalid(op, "no exercise in progress")
	}
	dp, ok := s.activeExercise.Distance()
	if !ok {
		return s.invalid(op, "exercise is not a distance exercise")
	}
	if distance <= 0 {
		return ValidationError("distance must be greater than zero")
	}
	if !models.IsValidDistanceUnit(string(unit)) {
		return ValidationError("unknown distance unit %q", unit)
	}

	dp.Distance = distance
	dp.Unit = unit
	s.log.Debug().Str("op", op).Float64("distance", distance).Str("unit", string(unit)).Msg("transition")
	return nil
}

// CompleteExercise stamps the end time and appends the active exercise.
// Distance exercises restart rest here, since they have no sets.
func (s *Session) CompleteExercise() error {
	const op = "complete exercise"
	if err := s.requireActive(op); err != nil {
		return err
	}
	if s.activeExercise == nil {
		return s.invalid(op, "no exercise in progress")
	}
	if s.activeSet != nil {
		return s.invalid(op, "a set is still in progress")
	}

	now := s.clock.Now()
	rec := s.activeExercise
	rec.EndTime = &now
	if rec.Type == models.ExerciseDistance {
		s.rest.Start(now)
	}
	s.exercises = append(s.exercises, rec.Clone())
	s.activeExercise = nil
	s.log.Debug().Str("op", op).Str("exercise", rec.Name).Int("completed", len(s.exercises)).Msg("transition")
	return nil
}

// CompleteWorkout builds the finished aggregate and moves to saving. It is
// allowed from the error phase so a failed save can be retried.
func (s *Session) CompleteWorkout() (*models.Workout, error) {
	const op = "complete workout"
	if s.phase != PhaseActive && s.phase != PhaseError {
		return nil, s.invalid(op, "workout is not active")
	}
	if s.activeExercise != nil {
		return nil, s.invalid(op, fmt.Sprintf("exercise %q still in progress", s.activeExercise.Name))
	}
	if len(s.exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	w := &models.Workout{
		WorkoutType: s.workoutType,
		StartTime:   s.startTime,
		EndTime:     s.clock.Now(),
		Exercises:   make([]models.ExerciseRecord, len(s.exercises)),
	}
	for i := range s.exercises {
		w.Exercises[i] = s.exercises[i].Clone()
	}
	w.Normalize()

	s.endTime = w.EndTime
	s.phase = PhaseSaving
	s.lastErr = nil
	s.log.Debug().Str("op", op).Int("exercises", len(w.Exercises)).Msg("transition")
	return w, nil
}

// SaveSucceeded acknowledges a successful save.
func (s *Session) SaveSucceeded(saved *models.SavedWorkout) error {
	const op = "save succeeded"
	if s.phase != PhaseSaving {
		return s.invalid(op, "no save in flight")
	}
	s.saved = saved
	s.phase = PhaseCompleted
	s.rest.Reset()
	s.log.Info().Str("op", op).Str("workout_type", s.workoutType).Msg("workout saved")
	return nil
}

// SaveFailed records a backend rejection. All session data is retained and
// the returned error wraps ErrSaveFailed.
func (s *Session) SaveFailed(cause error) error {
	const op = "save failed"
	if s.phase != PhaseSaving {
		return s.invalid(op, "no save in flight")
	}
	s.phase = PhaseError
	s.lastErr = fmt.Errorf("%w: %w", ErrSaveFailed, cause)
	s.log.Error().Err(cause).Str("op", op).Msg("workout save failed")
	return s.lastErr
}

// Finish completes the workout and saves it through b synchronously.
func (s *Session) Finish(ctx context.Context, b Backend) (*models.SavedWorkout, error) {
	w, err := s.CompleteWorkout()
	if err != nil {
		return nil, err
	}
	saved, err := b.SaveWorkout(ctx, w)
	if err != nil {
		return nil, s.SaveFailed(err)
	}
	if err := s.SaveSucceeded(saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Reset discards everything and returns to setup.
func (s *Session) Reset() {
	prev := s.phase
	s.phase = PhaseSetup
	s.workoutType = ""
	s.startTime = time.Time{}
	s.endTime = time.Time{}
	s.exercises = nil
	s.activeExercise = nil
	s.activeSet = nil
	s.rest.Reset()
	s.saved = nil
	s.lastErr = nil
	s.log.Debug().Str("op", "reset").Str("from", prev.String()).Msg("transition")
}

func intPtr(v int) *int { return &v }
