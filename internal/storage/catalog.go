// ABOUTME: Workout type and exercise definition storage.
// ABOUTME: Names are unique case-insensitively; duplicates are rejected.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

// CreateWorkoutType stores a new workout type.
func (d *DB) CreateWorkoutType(ctx context.Context, name string) (*models.WorkoutType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("create workout type: name is required")
	}
	if _, err := d.GetWorkoutTypeByName(ctx, name); err == nil {
		return nil, fmt.Errorf("create workout type: %q %w", name, ErrDuplicate)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	wt := &models.WorkoutType{Name: name, CreatedAt: time.Now()}
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO workout_types (name, created_at) VALUES (?, ?)`,
		wt.Name, formatTime(wt.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("create workout type: %w", err)
	}
	if wt.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("create workout type: %w", err)
	}
	return wt, nil
}

// ListWorkoutTypes returns all workout types ordered by name.
func (d *DB) ListWorkoutTypes(ctx context.Context) ([]models.WorkoutType, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM workout_types ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list workout types: %w", err)
	}
	defer rows.Close()

	types := []models.WorkoutType{}
	for rows.Next() {
		var wt models.WorkoutType
		var createdAt string
		if err := rows.Scan(&wt.ID, &wt.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan workout type: %w", err)
		}
		wt.CreatedAt = parseTime(createdAt)
		types = append(types, wt)
	}
	return types, rows.Err()
}

// GetWorkoutTypeByName looks up a workout type case-insensitively.
func (d *DB) GetWorkoutTypeByName(ctx context.Context, name string) (*models.WorkoutType, error) {
	var wt models.WorkoutType
	var createdAt string
	err := d.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workout_types WHERE name = ? COLLATE NOCASE`,
		strings.TrimSpace(name),
	).Scan(&wt.ID, &wt.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workout type %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout type: %w", err)
	}
	wt.CreatedAt = parseTime(createdAt)
	return &wt, nil
}

// ensureWorkoutType creates the named type inside tx if it is missing.
func ensureWorkoutType(ctx context.Context, tx *sql.Tx, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO workout_types (name, created_at) VALUES (?, ?)`,
		name, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("ensure workout type: %w", err)
	}
	return nil
}

// CreateExerciseDefinition stores a new catalog entry and sets def.ID.
func (d *DB) CreateExerciseDefinition(ctx context.Context, def *models.ExerciseDefinition) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return errors.New("create exercise: name is required")
	}
	if !models.IsValidExerciseType(string(def.Type)) {
		return fmt.Errorf("create exercise: invalid type %q", def.Type)
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = time.Now()
	}

	var exists int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercise_definitions WHERE name = ? COLLATE NOCASE`, def.Name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("create exercise: %q %w", def.Name, ErrDuplicate)
	}

	res, err := d.db.ExecContext(ctx,
		`INSERT INTO exercise_definitions (name, exercise_type, created_at) VALUES (?, ?, ?)`,
		def.Name, string(def.Type), formatTime(def.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	if def.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExerciseDefinition retrieves a catalog entry by ID.
func (d *DB) GetExerciseDefinition(ctx context.Context, id int64) (*models.ExerciseDefinition, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, name, exercise_type, created_at FROM exercise_definitions WHERE id = ?`, id)
	def, err := scanDefinition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return def, nil
}

// ListExerciseDefinitions returns the whole catalog ordered by name.
func (d *DB) ListExerciseDefinitions(ctx context.Context) ([]models.ExerciseDefinition, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, exercise_type, created_at FROM exercise_definitions ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()
	return scanDefinitions(rows)
}

// ListRecentExerciseDefinitions returns the exercises most recently recorded
// in workouts of the given type, newest first.
func (d *DB) ListRecentExerciseDefinitions(ctx context.Context, workoutTypeID int64, limit int) ([]models.ExerciseDefinition, error) {
	query := `
		SELECT d.id, d.name, d.exercise_type, d.created_at
		FROM exercise_definitions d
		JOIN exercise_records r ON r.exercise_definition_id = d.id
		JOIN workouts w ON w.id = r.workout_id
		JOIN workout_types t ON t.name = w.workout_type COLLATE NOCASE
		WHERE t.id = ?
		GROUP BY d.id
		ORDER BY MAX(w.started_at) DESC, d.name
	`
	args := []any{workoutTypeID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent exercises: %w", err)
	}
	defer rows.Close()
	return scanDefinitions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row rowScanner) (*models.ExerciseDefinition, error) {
	var def models.ExerciseDefinition
	var exerciseType, createdAt string
	if err := row.Scan(&def.ID, &def.Name, &exerciseType, &createdAt); err != nil {
		return nil, err
	}
	def.Type = models.ExerciseType(exerciseType)
	def.CreatedAt = parseTime(createdAt)
	return &def, nil
}

func scanDefinitions(rows *sql.Rows) ([]models.ExerciseDefinition, error) {
	defs := []models.ExerciseDefinition{}
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}
