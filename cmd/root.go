package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/oracle"
	"github.com/abhisek/studyplan/internal/service"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/abhisek/studyplan/internal/timetable"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "studyplan",
	Short: "Study load and scheduling planner",
	Long:  "Studyplan tracks subjects, commitments, and availability, checks whether the workload fits, and keeps the study timetable on track.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return initLogger(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYPLAN_DB env var)")
	rootCmd.PersistentFlags().String("user", "default", "User profile to operate on")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(feasibilityCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(redistributeCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogger(cmd *cobra.Command) error {
	cfg := zap.NewDevelopmentConfig()
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then STUDYPLAN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

func userID(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		return "default"
	}
	return u
}

// openStore opens the database for the command. Callers must Close it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openService wires the full service: store, optional oracle, logger.
// Without an API key in the environment the oracle stays nil and
// redistribution uses the deterministic fallback.
func openService(ctx context.Context, cmd *cobra.Command) (*service.Service, *store.Store, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	var orc timetable.Oracle
	if cfg, ok := llm.DiscoverConfig(); ok {
		provider, err := llm.NewProvider(ctx, cfg, zap.S())
		if err != nil {
			zap.S().Warnw("oracle disabled", "error", err)
		} else {
			orc = oracle.NewService(provider, oracle.DefaultConfig())
		}
	}

	return service.New(s, orc, zap.S()), s, nil
}

// parseDateFlag reads a YYYY-MM-DD flag, substituting fallback when
// the flag is empty.
func parseDateFlag(cmd *cobra.Command, name string, fallback time.Time) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return timeutil.StartOfDay(fallback), nil
	}
	d, err := timeutil.ParseDateKey(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, nil
}
