// ABOUTME: Root Cobra command for liftlog CLI.
// ABOUTME: Loads config, sets up logging, and opens the database for subcommands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/storage"
)

var (
	db       *storage.DB
	cfg      *config.Config
	logger   zerolog.Logger
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Workout tracker with live rest timers",
	Long: `Liftlog tracks strength and cardio workouts as you do them.

It times every set and the rest between sets, then saves the finished
workout to a local SQLite database.

EXERCISE TYPES:

  SETS_REPS   sets of repetitions, with weight, failure and partial reps
  SETS_TIME   timed sets such as planks, with a failure flag
  DISTANCE    a single distance, such as a run or a row

QUICK START:

  $ liftlog exercise add "Bench Press" --type sets-reps
  $ liftlog exercise add "Run" --type distance
  $ liftlog track "Push Day"              # Start a live session
  $ liftlog workout list                  # See saved workouts
  $ liftlog workout show abc123           # View sets and rest times

MCP INTEGRATION:

  Run 'liftlog mcp' to start the Model Context Protocol server so an
  assistant can drive the same session tools:

  {
    "mcpServers": {
      "liftlog": { "command": "liftlog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Workouts are stored in ~/.local/share/liftlog/liftlog.db.
  Settings live in ~/.config/liftlog/config.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.GetLogLevel()
		if logLevel != "" {
			if level, err = zerolog.ParseLevel(logLevel); err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()

		if !needsDB(cmd) {
			return nil
		}

		// PostRun is skipped when a command fails, so a previous handle may remain.
		closeDB()

		path := dbPath
		if path == "" {
			path = cfg.GetDBPath()
		}
		db, err = storage.Open(path, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeDB()
	},
}

func closeDB() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// needsDB reports whether cmd touches storage.
func needsDB(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "install-skill":
		return false
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: data dir from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
