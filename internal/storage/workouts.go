// ABOUTME: Workout persistence: saving finished sessions and reading history.
// ABOUTME: A workout is written with its exercises and sets in one transaction.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
)

// SaveWorkout validates and stores a finished workout, creating its workout
// type if needed.
func (d *DB) SaveWorkout(ctx context.Context, w *models.Workout) (*models.SavedWorkout, error) {
	if w == nil {
		return nil, errors.New("save workout: nil workout")
	}
	w.Normalize()
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}

	saved := models.NewSavedWorkout(*w)
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		return insertWorkout(ctx, tx, saved)
	})
	if err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}

	d.logger.Info().
		Str("id", saved.ID.String()).
		Str("workout_type", saved.WorkoutType).
		Int("exercises", len(saved.Exercises)).
		Msg("workout saved")
	return saved, nil
}

func insertWorkout(ctx context.Context, tx *sql.Tx, w *models.SavedWorkout) error {
	if err := ensureWorkoutType(ctx, tx, w.WorkoutType); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO workouts (id, workout_type, started_at, ended_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID.String(), w.WorkoutType, formatTime(w.StartTime), formatTime(w.EndTime), formatTime(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	for i := range w.Exercises {
		if err := insertExercise(ctx, tx, w.ID, &w.Exercises[i]); err != nil {
			return err
		}
	}
	return nil
}

func insertExercise(ctx context.Context, tx *sql.Tx, workoutID uuid.UUID, e *models.ExerciseRecord) error {
	var distance sql.NullFloat64
	var unit sql.NullString
	var restBefore int64
	if dp, ok := e.Distance(); ok {
		distance = sql.NullFloat64{Float64: dp.Distance, Valid: true}
		unit = sql.NullString{String: string(dp.Unit), Valid: true}
		restBefore = dp.RestBeforeMs
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO exercise_records (workout_id, exercise_definition_id, name, exercise_type,
			order_index, started_at, ended_at, distance, distance_unit, rest_before_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		workoutID.String(), e.DefinitionID, e.Name, string(e.Type),
		e.OrderIndex, formatTime(e.StartTime), formatNullTime(e.EndTime), distance, unit, restBefore,
	)
	if err != nil {
		return fmt.Errorf("insert exercise %q: %w", e.Name, err)
	}
	recordID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert exercise %q: %w", e.Name, err)
	}

	sets, ok := e.Sets()
	if !ok {
		return nil
	}
	for _, s := range sets.Sets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_sets (exercise_record_id, order_index, started_at, ended_at,
				is_failure, repetitions, partial_repetitions, weight_kg, rest_before_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			recordID, s.OrderIndex, formatTime(s.StartTime), formatNullTime(s.EndTime),
			s.IsFailure, nullInt(s.Repetitions), nullInt(s.PartialRepetitions), nullFloat(s.WeightKg), s.RestBeforeMs,
		)
		if err != nil {
			return fmt.Errorf("insert set for %q: %w", e.Name, err)
		}
	}
	return nil
}

// GetWorkout retrieves a workout with its exercises by ID or ID prefix.
func (d *DB) GetWorkout(ctx context.Context, idOrPrefix string) (*models.SavedWorkout, error) {
	id, err := d.resolveWorkoutID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRowContext(ctx, `
		SELECT id, workout_type, started_at, ended_at, created_at
		FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workout %s: %w", idOrPrefix, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}

	if w.Exercises, err = d.loadExercises(ctx, w.ID); err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkouts retrieves workouts with optional filtering by type.
// Results are sorted by StartTime descending (most recent first).
func (d *DB) ListWorkouts(ctx context.Context, workoutType *string, limit int) ([]*models.SavedWorkout, error) {
	query := `SELECT id, workout_type, started_at, ended_at, created_at FROM workouts`
	var args []any
	if workoutType != nil {
		query += ` WHERE workout_type = ? COLLATE NOCASE`
		args = append(args, *workoutType)
	}
	query += ` ORDER BY started_at DESC`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	var workouts []*models.SavedWorkout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	_ = rows.Close()

	for _, w := range workouts {
		if w.Exercises, err = d.loadExercises(ctx, w.ID); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// DeleteWorkout removes a workout with its exercises and sets.
func (d *DB) DeleteWorkout(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolveWorkoutID(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	result, err := d.db.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete workout %s: %w", idOrPrefix, ErrNotFound)
	}
	return nil
}

// resolveWorkoutID finds the full ID from a prefix.
func (d *DB) resolveWorkoutID(ctx context.Context, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("workout id is required: %w", ErrNotFound)
	}

	rows, err := d.db.QueryContext(ctx, `SELECT id FROM workouts WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve workout ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan workout ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("workout %s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches %d workouts", ErrAmbiguous, idOrPrefix, len(matches))
	}
	return matches[0], rows.Err()
}

func scanWorkout(row rowScanner) (*models.SavedWorkout, error) {
	var w models.SavedWorkout
	var idStr, startedAt, endedAt, createdAt string
	if err := row.Scan(&idStr, &w.WorkoutType, &startedAt, &endedAt, &createdAt); err != nil {
		return nil, err
	}
	w.ID, _ = uuid.Parse(idStr)
	w.StartTime = parseTime(startedAt)
	w.EndTime = parseTime(endedAt)
	w.CreatedAt = parseTime(createdAt)
	w.Exercises = []models.ExerciseRecord{}
	return &w, nil
}

func (d *DB) loadExercises(ctx context.Context, workoutID uuid.UUID) ([]models.ExerciseRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, exercise_definition_id, name, exercise_type, order_index, started_at, ended_at,
			distance, distance_unit, rest_before_ms
		FROM exercise_records WHERE workout_id = ? ORDER BY order_index`, workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	type pending struct {
		recordID int64
		rec      models.ExerciseRecord
	}
	var loaded []pending
	for rows.Next() {
		var p pending
		var exerciseType, startedAt string
		var endedAt, unit sql.NullString
		var distance sql.NullFloat64
		var restBefore int64
		err := rows.Scan(&p.recordID, &p.rec.DefinitionID, &p.rec.Name, &exerciseType, &p.rec.OrderIndex,
			&startedAt, &endedAt, &distance, &unit, &restBefore)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		p.rec.Type = models.ExerciseType(exerciseType)
		p.rec.StartTime = parseTime(startedAt)
		p.rec.EndTime = parseNullTime(endedAt)
		if p.rec.Type == models.ExerciseDistance {
			p.rec.Payload = &models.DistancePayload{
				Distance:     distance.Float64,
				Unit:         models.DistanceUnit(unit.String),
				RestBeforeMs: restBefore,
			}
		} else {
			p.rec.Payload = &models.SetsPayload{Sets: []models.SetRecord{}}
		}
		loaded = append(loaded, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	_ = rows.Close()

	out := make([]models.ExerciseRecord, 0, len(loaded))
	for _, p := range loaded {
		if sp, ok := p.rec.Sets(); ok {
			if sp.Sets, err = d.loadSets(ctx, p.recordID); err != nil {
				return nil, err
			}
		}
		out = append(out, p.rec)
	}
	return out, nil
}

func (d *DB) loadSets(ctx context.Context, recordID int64) ([]models.SetRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT order_index, started_at, ended_at, is_failure, repetitions, partial_repetitions,
			weight_kg, rest_before_ms
		FROM exercise_sets WHERE exercise_record_id = ? ORDER BY order_index`, recordID)
	if err != nil {
		return nil, fmt.Errorf("load sets: %w", err)
	}
	defer rows.Close()

	sets := []models.SetRecord{}
	for rows.Next() {
		var s models.SetRecord
		var startedAt string
		var endedAt sql.NullString
		var reps, partial sql.NullInt64
		var weight sql.NullFloat64
		err := rows.Scan(&s.OrderIndex, &startedAt, &endedAt, &s.IsFailure, &reps, &partial, &weight, &s.RestBeforeMs)
		if err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		s.StartTime = parseTime(startedAt)
		s.EndTime = parseNullTime(endedAt)
		if reps.Valid {
			v := int(reps.Int64)
			s.Repetitions = &v
		}
		if partial.Valid {
			v := int(partial.Int64)
			s.PartialRepetitions = &v
		}
		if weight.Valid {
			v := weight.Float64
			s.WeightKg = &v
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// since filters workouts that started at or after t.
func since(workouts []*models.SavedWorkout, t *time.Time) []*models.SavedWorkout {
	if t == nil {
		return workouts
	}
	var out []*models.SavedWorkout
	for _, w := range workouts {
		if !w.StartTime.Before(*t) {
			out = append(out, w)
		}
	}
	return out
}
