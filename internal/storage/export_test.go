// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/liftlog/internal/models"
)

func seedExportDB(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.CreateWorkoutType(ctx, "Push Day"); err != nil {
		t.Fatalf("CreateWorkoutType failed: %v", err)
	}
	for _, def := range []*models.ExerciseDefinition{
		models.NewExerciseDefinition("Bench Press", models.ExerciseSetsReps),
		models.NewExerciseDefinition("Run", models.ExerciseDistance),
	} {
		if err := db.CreateExerciseDefinition(ctx, def); err != nil {
			t.Fatalf("CreateExerciseDefinition failed: %v", err)
		}
	}
	if _, err := db.SaveWorkout(ctx, sampleWorkout("Push Day", t0)); err != nil {
		t.Fatalf("SaveWorkout failed: %v", err)
	}
	return db
}

func TestExportJSON(t *testing.T) {
	db := seedExportDB(t)

	data, err := db.ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.Tool != "liftlog" {
		t.Errorf("Expected tool liftlog, got %s", export.Tool)
	}
	if len(export.WorkoutTypes) != 1 || len(export.Exercises) != 2 {
		t.Errorf("unexpected catalog: %d types, %d exercises", len(export.WorkoutTypes), len(export.Exercises))
	}
	if len(export.Workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(export.Workouts))
	}
	if _, ok := export.Workouts[0].Exercises[1].Distance(); !ok {
		t.Error("distance payload lost in JSON export")
	}
	if !strings.Contains(string(data), `"details"`) {
		t.Error("expected exercise details in JSON")
	}
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := seedExportDB(t)
	ctx := context.Background()

	data, err := src.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := dst.ImportJSON(ctx, data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	// A second import skips what is already there.
	if err := dst.ImportJSON(ctx, data); err != nil {
		t.Fatalf("second ImportJSON failed: %v", err)
	}

	workouts, err := dst.ListWorkouts(ctx, nil, 0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("expected 1 workout after import, got %d", len(workouts))
	}
	sets, ok := workouts[0].Exercises[0].Sets()
	if !ok || len(sets.Sets) != 2 || sets.Sets[1].RestBeforeMs != 90_000 {
		t.Errorf("sets not preserved through import: %+v", workouts[0].Exercises[0].Payload)
	}

	defs, err := dst.ListExerciseDefinitions(ctx)
	if err != nil {
		t.Fatalf("ListExerciseDefinitions failed: %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("expected 2 exercises, got %d", len(defs))
	}
	if _, err := dst.GetWorkoutTypeByName(ctx, "Push Day"); err != nil {
		t.Errorf("workout type not imported: %v", err)
	}
}

func TestImportJSONRemapsDefinitionIDs(t *testing.T) {
	src := seedExportDB(t)
	ctx := context.Background()
	data, err := src.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	// The destination already uses IDs 1 and 2, and spells Run differently.
	dst := setupTestDB(t)
	squat := models.NewExerciseDefinition("Squat", models.ExerciseSetsReps)
	run := models.NewExerciseDefinition("run", models.ExerciseDistance)
	for _, def := range []*models.ExerciseDefinition{squat, run} {
		if err := dst.CreateExerciseDefinition(ctx, def); err != nil {
			t.Fatalf("CreateExerciseDefinition failed: %v", err)
		}
	}
	if squat.ID != 1 || run.ID != 2 {
		t.Fatalf("unexpected destination IDs: squat=%d run=%d", squat.ID, run.ID)
	}

	if err := dst.ImportJSON(ctx, data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	defs, err := dst.ListExerciseDefinitions(ctx)
	if err != nil {
		t.Fatalf("ListExerciseDefinitions failed: %v", err)
	}
	byName := make(map[string]int64, len(defs))
	for _, d := range defs {
		byName[d.Name] = d.ID
	}
	if len(defs) != 3 {
		t.Fatalf("expected Squat, run and Bench Press, got %+v", defs)
	}
	bench, ok := byName["Bench Press"]
	if !ok || bench == squat.ID {
		t.Fatalf("Bench Press not imported as its own definition: %+v", defs)
	}

	workouts, err := dst.ListWorkouts(ctx, nil, 0)
	if err != nil || len(workouts) != 1 {
		t.Fatalf("ListWorkouts = %d, %v", len(workouts), err)
	}
	if got := workouts[0].Exercises[0].DefinitionID; got != bench {
		t.Errorf("bench record points at definition %d, want %d", got, bench)
	}
	if got := workouts[0].Exercises[1].DefinitionID; got != run.ID {
		t.Errorf("run record points at definition %d, want %d", got, run.ID)
	}

	wt, err := dst.GetWorkoutTypeByName(ctx, "Push Day")
	if err != nil {
		t.Fatalf("GetWorkoutTypeByName failed: %v", err)
	}
	recent, err := dst.ListRecentExerciseDefinitions(ctx, wt.ID, 10)
	if err != nil {
		t.Fatalf("ListRecentExerciseDefinitions failed: %v", err)
	}
	for _, d := range recent {
		if d.ID == squat.ID {
			t.Errorf("recent exercises for Push Day include Squat: %+v", recent)
		}
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 recent exercises, got %+v", recent)
	}
}

func TestImportDataCreatesMissingDefinitions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	w := sampleWorkout("Push Day", t0)
	w.Exercises[0].DefinitionID = 41
	w.Exercises[1].DefinitionID = 42
	data := &ExportData{Workouts: []*models.SavedWorkout{models.NewSavedWorkout(*w)}}
	if err := db.ImportData(ctx, data); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	defs, err := db.ListExerciseDefinitions(ctx)
	if err != nil {
		t.Fatalf("ListExerciseDefinitions failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected definitions created from records, got %+v", defs)
	}
	saved, err := db.GetWorkout(ctx, data.Workouts[0].ID.String())
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	for i, e := range saved.Exercises {
		if e.DefinitionID == 41 || e.DefinitionID == 42 {
			t.Errorf("exercise %d kept foreign definition ID %d", i, e.DefinitionID)
		}
	}
	if data.Workouts[0].Exercises[0].DefinitionID != 41 {
		t.Error("ImportData mutated the caller's workout")
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if err := db.ImportJSON(context.Background(), []byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}

	bad := []byte(`{"workouts":[{"id":"6f1c1c52-8f0e-4a57-9a39-1f3f0e0b2a11","workout_type":"X",
		"start_time":"2026-01-01T10:00:00Z","end_time":"2026-01-01T11:00:00Z","exercises":[]}]}`)
	if err := db.ImportJSON(context.Background(), bad); err == nil {
		t.Error("expected error for workout without exercises")
	}
	list, _ := db.ListWorkouts(context.Background(), nil, 0)
	if len(list) != 0 {
		t.Errorf("failed import must not leave partial data, got %d workouts", len(list))
	}
}

func TestExportYAML(t *testing.T) {
	db := seedExportDB(t)

	data, err := db.ExportYAML(context.Background())
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if parsed["tool"] != "liftlog" {
		t.Errorf("Expected tool liftlog, got %v", parsed["tool"])
	}
	workouts, ok := parsed["workouts"].([]any)
	if !ok || len(workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %v", parsed["workouts"])
	}

	out := string(data)
	for _, want := range []string{"Bench Press", "weight_kg: 62.5", "rest_sec: 90", "distance: 5 kilometers", "duration_minutes: 25"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

func TestExportMarkdown(t *testing.T) {
	db := seedExportDB(t)

	md, err := db.ExportMarkdown(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	for _, want := range []string{"# Workout Log", "| Push Day | 25 min | 2 | 2 |", "**Bench Press**", "8 x 60kg", "6 x 62.5kg +2 partial to failure (rest 90s)", "**Run**: 5 kilometers"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := seedExportDB(t)

	after := t0.Add(time.Hour)
	md, err := db.ExportMarkdown(context.Background(), &after)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "No workouts recorded.") {
		t.Errorf("expected empty log, got:\n%s", md)
	}
}
