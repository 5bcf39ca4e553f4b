// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server so assistants can drive a live session.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/catalog"
	"github.com/harperreed/liftlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and holds one live workout
session, so an assistant can time sets and rest while you train.

AVAILABLE TOOLS:

  Catalog      list_workout_types, add_workout_type, list_exercises, add_exercise
  History      list_workouts, get_workout, delete_workout
  Live session start_workout, select_exercise, discard_exercise, start_set,
               end_set, update_set, commit_set, record_distance,
               complete_exercise, finish_workout, reset_workout, session_status

AVAILABLE RESOURCES:

  liftlog://workouts/recent    Recent workouts summary
  liftlog://exercises          Exercise catalog and workout types
  liftlog://session/current    Live session state`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := catalog.NewCache(db, cfg.GetCatalogCacheTTL(), logger)
		server, err := mcp.NewServer(db, mcp.WithLogger(logger), mcp.WithCatalog(cache))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
