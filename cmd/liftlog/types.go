// ABOUTME: CLI commands for managing workout types.
// ABOUTME: Supports add and list subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:     "type",
	Aliases: []string{"types"},
	Short:   "Manage workout types",
	Long: `Workout types name the kind of session, such as "Push Day" or "Long Run".

Types are created automatically when a workout is saved, and are used to
suggest recently used exercises when you track that type again.`,
}

var typeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a workout type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wt, err := db.CreateWorkoutType(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to add workout type: %w", err)
		}
		color.Green("✓ Added workout type %s", wt.Name)
		return nil
	},
}

var typeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workout types",
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := db.ListWorkoutTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workout types: %w", err)
		}
		if len(types) == 0 {
			fmt.Println("No workout types yet.")
			return nil
		}

		for _, wt := range types {
			fmt.Printf("%s %s\n", faint.Sprintf("%4d", wt.ID), wt.Name)
		}
		return nil
	},
}

func init() {
	typeCmd.AddCommand(typeAddCmd)
	typeCmd.AddCommand(typeListCmd)
	rootCmd.AddCommand(typeCmd)
}
