// ABOUTME: Repository interface for workout data storage.
// ABOUTME: Defines the catalog, workout history, and export contract.
package storage

import (
	"context"

	"github.com/harperreed/liftlog/internal/models"
)

// Repository defines the storage interface for liftlog data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Workout types
	CreateWorkoutType(ctx context.Context, name string) (*models.WorkoutType, error)
	ListWorkoutTypes(ctx context.Context) ([]models.WorkoutType, error)
	GetWorkoutTypeByName(ctx context.Context, name string) (*models.WorkoutType, error)

	// Exercise catalog
	CreateExerciseDefinition(ctx context.Context, def *models.ExerciseDefinition) error
	GetExerciseDefinition(ctx context.Context, id int64) (*models.ExerciseDefinition, error)
	ListExerciseDefinitions(ctx context.Context) ([]models.ExerciseDefinition, error)
	ListRecentExerciseDefinitions(ctx context.Context, workoutTypeID int64, limit int) ([]models.ExerciseDefinition, error)

	// Workouts
	SaveWorkout(ctx context.Context, w *models.Workout) (*models.SavedWorkout, error)
	GetWorkout(ctx context.Context, idOrPrefix string) (*models.SavedWorkout, error)
	ListWorkouts(ctx context.Context, workoutType *string, limit int) ([]*models.SavedWorkout, error)
	DeleteWorkout(ctx context.Context, idOrPrefix string) error

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
