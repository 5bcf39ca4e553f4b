// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Adds exercise definitions and lists all or recently used ones.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/models"
)

var (
	exerciseType   string
	exerciseRecent string
	exerciseLimit  int
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Exercises are the movements you can pick during a workout.

Each exercise has a type that decides what gets recorded:

  sets-reps   repetitions per set, with weight, failure and partial reps
  sets-time   timed sets, with a failure flag
  distance    one distance per exercise (m, km or mi)`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Long: `Add an exercise definition to the catalog.

Examples:
  liftlog exercise add "Bench Press" --type sets-reps
  liftlog exercise add Plank --type sets-time
  liftlog exercise add Run --type distance`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, ok := models.ParseExerciseType(exerciseType)
		if !ok {
			return fmt.Errorf("unknown exercise type: %s\nValid types: sets-reps, sets-time, distance", exerciseType)
		}

		def := models.NewExerciseDefinition(args[0], et)
		if err := db.CreateExerciseDefinition(cmd.Context(), def); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", def.Name)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprintf("%d", def.ID), def.Type)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Long: `List the exercise catalog.

With --recent, list only exercises used in workouts of that type, most
recently used first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var defs []models.ExerciseDefinition
		if exerciseRecent != "" {
			wt, err := db.GetWorkoutTypeByName(ctx, exerciseRecent)
			if err != nil {
				return fmt.Errorf("unknown workout type: %s", exerciseRecent)
			}
			if defs, err = db.ListRecentExerciseDefinitions(ctx, wt.ID, exerciseLimit); err != nil {
				return fmt.Errorf("failed to list exercises: %w", err)
			}
		} else {
			var err error
			if defs, err = db.ListExerciseDefinitions(ctx); err != nil {
				return fmt.Errorf("failed to list exercises: %w", err)
			}
		}

		if len(defs) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}
		printDefinitions(defs)
		return nil
	},
}

func printDefinitions(defs []models.ExerciseDefinition) {
	for _, d := range defs {
		fmt.Printf("%s %s %s\n",
			faint.Sprintf("%4d", d.ID),
			padRight(truncate(d.Name, 28), 28),
			faint.Sprint(d.Type))
	}
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseType, "type", "t", "sets-reps", "exercise type: sets-reps, sets-time, distance")
	exerciseListCmd.Flags().StringVarP(&exerciseRecent, "recent", "r", "", "only exercises recently used in this workout type")
	exerciseListCmd.Flags().IntVarP(&exerciseLimit, "limit", "n", 10, "max number of recent results")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	rootCmd.AddCommand(exerciseCmd)
}
