// ABOUTME: MCP tool implementations for the catalog and workout history.
// ABOUTME: Provides workout type, exercise, and saved workout operations.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/liftlog/internal/models"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workout_types",
		Description: "List the workout types (Push Day, Long Run, ...) workouts are filed under",
	}, s.handleListWorkoutTypes)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout_type",
		Description: "Create a new workout type",
	}, s.handleAddWorkoutType)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercise definitions, or those recently used for a workout type",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise definition of type SETS_REPS, SETS_TIME or DISTANCE",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent saved workouts, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a saved workout with all exercises and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a saved workout by ID or ID prefix",
	}, s.handleDeleteWorkout)
}

// Tool input/output types

type simpleOutput struct {
	Message string `json:"message"`
}

type addWorkoutTypeInput struct {
	Name string `json:"name" jsonschema:"Workout type name, e.g. Push Day"`
}

type workoutTypeOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type listExercisesInput struct {
	WorkoutType string `json:"workout_type,omitempty" jsonschema:"Only exercises recently used in this workout type"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max results for recent lookups (default 10)"`
}

type addExerciseInput struct {
	Name string `json:"name" jsonschema:"Exercise name, e.g. Bench Press"`
	Type string `json:"type" jsonschema:"SETS_REPS, SETS_TIME or DISTANCE"`
}

type exerciseOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	WorkoutType string `json:"workout_type,omitempty" jsonschema:"Filter by workout type"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout ID or prefix"`
}

// Tool handlers

func (s *Server) handleListWorkoutTypes(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	types, err := s.repo.ListWorkoutTypes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workout types: %w", err)
	}
	if len(types) == 0 {
		return nil, map[string]any{"message": "No workout types yet."}, nil
	}
	return nil, map[string]any{"workout_types": types}, nil
}

func (s *Server) handleAddWorkoutType(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutTypeInput) (*mcp.CallToolResult, workoutTypeOutput, error) {
	wt, err := s.repo.CreateWorkoutType(ctx, input.Name)
	if err != nil {
		return nil, workoutTypeOutput{}, fmt.Errorf("failed to add workout type: %w", err)
	}
	return nil, workoutTypeOutput{
		ID:      wt.ID,
		Name:    wt.Name,
		Message: fmt.Sprintf("Added workout type %s", wt.Name),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	var defs []models.ExerciseDefinition
	if input.WorkoutType != "" {
		wt, err := s.repo.GetWorkoutTypeByName(ctx, input.WorkoutType)
		if err != nil {
			return nil, nil, fmt.Errorf("unknown workout type: %s", input.WorkoutType)
		}
		if input.Limit <= 0 {
			input.Limit = 10
		}
		if defs, err = s.catalog.ListRecentExerciseDefinitions(ctx, wt.ID, input.Limit); err != nil {
			return nil, nil, err
		}
	} else {
		var err error
		if defs, err = s.catalog.ListExerciseDefinitions(ctx); err != nil {
			return nil, nil, err
		}
	}

	if len(defs) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}
	return nil, map[string]any{"exercises": defs}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	et, ok := models.ParseExerciseType(input.Type)
	if !ok {
		return nil, exerciseOutput{}, fmt.Errorf("unknown exercise type: %s (want %s)", input.Type, typeList())
	}

	def := models.NewExerciseDefinition(input.Name, et)
	if err := s.repo.CreateExerciseDefinition(ctx, def); err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}
	s.catalog.Invalidate()

	return nil, exerciseOutput{
		ID:      def.ID,
		Name:    def.Name,
		Type:    string(def.Type),
		Message: fmt.Sprintf("Added %s exercise %s (ID: %d)", def.Type, def.Name, def.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var workoutType *string
	if input.WorkoutType != "" {
		workoutType = &input.WorkoutType
	}

	workouts, err := s.repo.ListWorkouts(ctx, workoutType, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}

	summaries := make([]workoutSummary, 0, len(workouts))
	for _, w := range workouts {
		summaries = append(summaries, summarize(w))
	}
	return nil, map[string]any{"workouts": summaries}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}
	return nil, w, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	s.catalog.Invalidate()

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %s", input.ID),
	}, nil
}

// workoutSummary is the compact listing form of a saved workout.
type workoutSummary struct {
	ID             string  `json:"id"`
	WorkoutType    string  `json:"workout_type"`
	StartedAt      string  `json:"started_at"`
	DurationMin    int64   `json:"duration_minutes"`
	Exercises      int     `json:"exercises"`
	Sets           int     `json:"sets"`
	AverageRestSec float64 `json:"average_rest_sec"`
}

func summarize(w *models.SavedWorkout) workoutSummary {
	return workoutSummary{
		ID:             w.ID.String()[:8],
		WorkoutType:    w.WorkoutType,
		StartedAt:      w.StartTime.Format("2006-01-02 15:04"),
		DurationMin:    w.DurationMs() / 60000,
		Exercises:      len(w.Exercises),
		Sets:           w.SetCount(),
		AverageRestSec: w.AverageRestMs() / 1000,
	}
}

func typeList() string {
	names := make([]string, 0, len(models.AllExerciseTypes))
	for _, t := range models.AllExerciseTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
