// ABOUTME: CLI commands for saved workouts.
// ABOUTME: Supports list, show, and delete subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/session"
)

var (
	workoutType  string
	workoutLimit int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Browse saved workouts",
	Long: `Browse workouts saved by 'liftlog track' or the MCP server.

COMMANDS:

  list     List recent workouts
  show     View a workout with every exercise, set and rest time
  delete   Delete a workout

IDs can be given as the 8-character prefix shown by 'liftlog workout list'.`,
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var wType *string
		if workoutType != "" {
			wType = &workoutType
		}

		workouts, err := db.ListWorkouts(cmd.Context(), wType, workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		for _, w := range workouts {
			fmt.Printf("%s %s %s %s %d exercises, %d sets\n",
				faint.Sprint(w.ID.String()[:8]),
				faint.Sprint(w.StartTime.Format("2006-01-02 15:04")),
				padRight(truncate(w.WorkoutType, 16), 16),
				padRight(session.FormatDuration(w.DurationMs()), 8),
				len(w.Exercises),
				w.SetCount())
		}

		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := db.GetWorkout(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		fmt.Printf("Workout: %s\n", w.ID.String()[:8])
		fmt.Printf("Type: %s\n", w.WorkoutType)
		fmt.Printf("Started: %s\n", w.StartTime.Format("2006-01-02 15:04"))
		fmt.Printf("Duration: %s\n", session.FormatDuration(w.DurationMs()))
		if avg := w.AverageRestMs(); avg > 0 {
			fmt.Printf("Average rest: %s\n", session.FormatDuration(int64(avg)))
		}

		for _, e := range w.Exercises {
			fmt.Println()
			bold.Printf("%d. %s\n", e.OrderIndex+1, e.Name)
			if dp, ok := e.Distance(); ok {
				fmt.Printf("   %g %s, rest %s\n", dp.Distance, dp.Unit, session.FormatDuration(dp.RestBeforeMs))
				continue
			}
			if sp, ok := e.Sets(); ok {
				for i, s := range sp.Sets {
					fmt.Printf("   Set %d: %s\n", i+1, describeSet(e.Type, s))
				}
			}
		}

		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by its ID or ID prefix.

This permanently deletes the workout with all its exercises and sets.
If the prefix matches multiple workouts, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := db.GetWorkout(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		if err := db.DeleteWorkout(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted %s workout", w.WorkoutType)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(w.ID.String()[:8]),
			w.StartTime.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	workoutListCmd.Flags().StringVarP(&workoutType, "type", "t", "", "filter by workout type")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
