// ABOUTME: Export and import functionality for liftlog data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/liftlog/internal/models"
)

// ExportData represents the full export format for liftlog data.
type ExportData struct {
	Version      string                      `json:"version" yaml:"version"`
	ExportedAt   time.Time                   `json:"exported_at" yaml:"exported_at"`
	Tool         string                      `json:"tool" yaml:"tool"`
	WorkoutTypes []models.WorkoutType        `json:"workout_types" yaml:"workout_types"`
	Exercises    []models.ExerciseDefinition `json:"exercises" yaml:"exercises"`
	Workouts     []*models.SavedWorkout      `json:"workouts" yaml:"-"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	types, err := d.ListWorkoutTypes(ctx)
	if err != nil {
		return nil, err
	}
	defs, err := d.ListExerciseDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	workouts, err := d.ListWorkouts(ctx, nil, 0)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		Tool:         "liftlog",
		WorkoutTypes: types,
		Exercises:    defs,
		Workouts:     workouts,
	}, nil
}

// ImportData imports data from an export in one transaction. Catalog
// entries whose names already exist and workouts whose IDs already exist
// are skipped.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	skipped := 0
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, wt := range data.WorkoutTypes {
			if err := ensureWorkoutType(ctx, tx, wt.Name); err != nil {
				return fmt.Errorf("import workout type: %w", err)
			}
		}

		// Exported IDs belong to the source database; definitions are
		// matched by name and workouts are pointed at the local rows.
		ids := make(map[int64]int64, len(data.Exercises))
		for _, def := range data.Exercises {
			if !models.IsValidExerciseType(string(def.Type)) {
				return fmt.Errorf("import exercise %q: invalid type %q", def.Name, def.Type)
			}
			id, err := resolveDefinition(ctx, tx, def.Name, def.Type, def.CreatedAt)
			if err != nil {
				return fmt.Errorf("import exercise %q: %w", def.Name, err)
			}
			ids[def.ID] = id
		}

		for _, w := range data.Workouts {
			var exists int
			if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts WHERE id = ?`, w.ID.String()).Scan(&exists); err != nil {
				return fmt.Errorf("import workout: %w", err)
			}
			if exists > 0 {
				skipped++
				continue
			}
			if err := w.Validate(); err != nil {
				return fmt.Errorf("import workout %s: %w", w.ID.String()[:8], err)
			}
			local := *w
			local.Exercises = make([]models.ExerciseRecord, len(w.Exercises))
			for i := range w.Exercises {
				e := w.Exercises[i].Clone()
				id, ok := ids[e.DefinitionID]
				if !ok {
					var err error
					if id, err = resolveDefinition(ctx, tx, e.Name, e.Type, e.StartTime); err != nil {
						return fmt.Errorf("import workout %s: %w", w.ID.String()[:8], err)
					}
					ids[e.DefinitionID] = id
				}
				e.DefinitionID = id
				local.Exercises[i] = e
			}
			if err := insertWorkout(ctx, tx, &local); err != nil {
				return fmt.Errorf("import workout %s: %w", w.ID.String()[:8], err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.Info().
		Int("workouts", len(data.Workouts)-skipped).
		Int("skipped", skipped).
		Msg("import complete")
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &exportData)
}

// ExportYAML exports all data as YAML, flattening each exercise into a
// human-readable summary.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version      string                      `yaml:"version"`
		ExportedAt   string                      `yaml:"exported_at"`
		Tool         string                      `yaml:"tool"`
		WorkoutTypes []string                    `yaml:"workout_types"`
		Exercises    []models.ExerciseDefinition `yaml:"exercises"`
		Workouts     []yamlWorkout               `yaml:"workouts"`
	}{
		Version:      data.Version,
		ExportedAt:   data.ExportedAt.Format(time.RFC3339),
		Tool:         data.Tool,
		WorkoutTypes: make([]string, 0, len(data.WorkoutTypes)),
		Exercises:    data.Exercises,
		Workouts:     make([]yamlWorkout, 0, len(data.Workouts)),
	}
	for _, wt := range data.WorkoutTypes {
		yamlData.WorkoutTypes = append(yamlData.WorkoutTypes, wt.Name)
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:              w.ID.String()[:8],
			Type:            w.WorkoutType,
			StartedAt:       w.StartTime.Format(time.RFC3339),
			DurationMinutes: int(w.DurationMs() / 60000),
		}
		for _, e := range w.Exercises {
			ye := yamlExercise{Name: e.Name, Type: string(e.Type)}
			if dp, ok := e.Distance(); ok {
				ye.Distance = fmt.Sprintf("%g %s", dp.Distance, strings.ToLower(string(dp.Unit)))
			}
			if sp, ok := e.Sets(); ok {
				for _, s := range sp.Sets {
					ye.Sets = append(ye.Sets, yamlSet{
						Reps:        s.Repetitions,
						WeightKg:    s.WeightKg,
						PartialReps: s.PartialRepetitions,
						Failure:     s.IsFailure,
						DurationSec: s.DurationMs() / 1000,
						RestSec:     s.RestBeforeMs / 1000,
					})
				}
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		yamlData.Workouts = append(yamlData.Workouts, yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID              string         `yaml:"id"`
	Type            string         `yaml:"type"`
	StartedAt       string         `yaml:"started_at"`
	DurationMinutes int            `yaml:"duration_minutes"`
	Exercises       []yamlExercise `yaml:"exercises,omitempty"`
}

type yamlExercise struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Distance string    `yaml:"distance,omitempty"`
	Sets     []yamlSet `yaml:"sets,omitempty"`
}

type yamlSet struct {
	Reps        *int     `yaml:"reps,omitempty"`
	WeightKg    *float64 `yaml:"weight_kg,omitempty"`
	PartialReps *int     `yaml:"partial_reps,omitempty"`
	Failure     bool     `yaml:"failure,omitempty"`
	DurationSec int64    `yaml:"duration_sec"`
	RestSec     int64    `yaml:"rest_sec"`
}

// ExportMarkdown renders workout history as Markdown, optionally limited to
// workouts started at or after sinceTime.
func (d *DB) ExportMarkdown(ctx context.Context, sinceTime *time.Time) (string, error) {
	workouts, err := d.ListWorkouts(ctx, nil, 0)
	if err != nil {
		return "", err
	}
	workouts = since(workouts, sinceTime)

	var sb strings.Builder
	now := time.Now()
	sb.WriteString(fmt.Sprintf("# Workout Log - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(workouts) == 0 {
		sb.WriteString("No workouts recorded.\n")
		return sb.String(), nil
	}

	sb.WriteString("| Date | Type | Duration | Exercises | Sets |\n")
	sb.WriteString("|------|------|----------|-----------|------|\n")
	for _, w := range workouts {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d min | %d | %d |\n",
			w.StartTime.Local().Format("2006-01-02 15:04"),
			w.WorkoutType, w.DurationMs()/60000, len(w.Exercises), w.SetCount()))
	}

	for _, w := range workouts {
		sb.WriteString(fmt.Sprintf("\n## %s - %s\n\n", w.StartTime.Local().Format("2006-01-02"), w.WorkoutType))
		for _, e := range w.Exercises {
			if dp, ok := e.Distance(); ok {
				sb.WriteString(fmt.Sprintf("- **%s**: %g %s\n", e.Name, dp.Distance, strings.ToLower(string(dp.Unit))))
				continue
			}
			sb.WriteString(fmt.Sprintf("- **%s**\n", e.Name))
			sp, _ := e.Sets()
			for i, s := range sp.Sets {
				sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, describeSet(e.Type, s)))
			}
		}
	}
	return sb.String(), nil
}

func describeSet(t models.ExerciseType, s models.SetRecord) string {
	var parts []string
	if t == models.ExerciseSetsReps {
		reps, weight := 0, 0.0
		if s.Repetitions != nil {
			reps = *s.Repetitions
		}
		if s.WeightKg != nil {
			weight = *s.WeightKg
		}
		parts = append(parts, fmt.Sprintf("%d x %gkg", reps, weight))
		if s.PartialRepetitions != nil && *s.PartialRepetitions > 0 {
			parts = append(parts, fmt.Sprintf("+%d partial", *s.PartialRepetitions))
		}
	} else {
		parts = append(parts, fmt.Sprintf("%ds", s.DurationMs()/1000))
	}
	if s.IsFailure {
		parts = append(parts, "to failure")
	}
	if s.RestBeforeMs > 0 {
		parts = append(parts, fmt.Sprintf("(rest %ds)", s.RestBeforeMs/1000))
	}
	return strings.Join(parts, " ")
}

// resolveDefinition returns the local ID of the named exercise, creating it
// when no definition with that name exists.
func resolveDefinition(ctx context.Context, tx *sql.Tx, name string, typ models.ExerciseType, created time.Time) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM exercise_definitions WHERE name = ? COLLATE NOCASE`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup definition: %w", err)
	}

	if created.IsZero() {
		created = time.Now()
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO exercise_definitions (name, exercise_type, created_at)
		VALUES (?, ?, ?)`,
		name, string(typ), formatTime(created),
	)
	if err != nil {
		return 0, fmt.Errorf("insert definition: %w", err)
	}
	return res.LastInsertId()
}
