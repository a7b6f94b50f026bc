package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asbg75/interclubs/cmd/cli/commands"
	"github.com/asbg75/interclubs/internal/config"
	"github.com/asbg75/interclubs/pkg/db"
	"github.com/asbg75/interclubs/pkg/metrics"
	"github.com/asbg75/interclubs/pkg/postgres"
	"github.com/asbg75/interclubs/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
	app        *commands.AppContext
)

func main() {
	app = &commands.AppContext{
		Ctx: context.Background(),
	}

	rootCmd := &cobra.Command{
		Use:   "interclubs",
		Short: "Interclubs CLI - Rank players, draw teams and follow results",
		Long: `A CLI tool for the club's Interclubs season: ranks the volunteer players,
draws the teams from the rankings and collects the competition results.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (overrides the interclubs.<env>.yaml lookup)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.RankPlayersCmd(app))
	rootCmd.AddCommand(commands.DrawPlayersCmd(app))
	rootCmd.AddCommand(commands.ListDrawsCmd(app))
	rootCmd.AddCommand(commands.ViewDrawCmd(app))
	rootCmd.AddCommand(commands.ReshapeCriteriaCmd(app))
	rootCmd.AddCommand(commands.GenerateRankingsCmd(app))
	rootCmd.AddCommand(commands.GenerateCriteriaCmd(app))
	rootCmd.AddCommand(commands.FetchResultsCmd(app))
	rootCmd.AddCommand(commands.ViewResultsCmd(app))
	rootCmd.AddCommand(commands.ServeDashboardCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up logger, config, metrics and, when the command needs it, the database
func initApp(cmd *cobra.Command) error {
	var err error

	app.Logger, err = logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Starting application", zap.String("environment", env), zap.String("command", cmd.Name()))

	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully", zap.String("data_dir", app.Cfg.DataDir))

	app.Metrics = metrics.NewManager()

	if cmd.Annotations[commands.AnnotationNeedsDatabase] != "true" {
		return nil
	}

	app.Logger.Debug("Connecting to database", zap.String("driver", app.Cfg.Database.Driver))
	app.Database, err = openDatabase(app.Ctx, app.Cfg)
	if err != nil {
		return err
	}
	app.Logger.Debug("Database initialized successfully")

	return nil
}

func closeApp() {
	if app.Database != nil {
		if err := app.Database.Close(); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to close database", zap.Error(err))
		}
		app.Database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}

// openDatabase connects to the configured backend. A relative SQLite path is
// resolved against the data directory.
func openDatabase(ctx context.Context, cfg *config.Config) (db.Database, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		path := cfg.Database.DSN
		if path != ":memory:" {
			path = cfg.ResolvePath(path)
		}
		database, err := db.NewSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite database: %w", err)
		}
		return database, nil
	case "postgres":
		database, err := postgres.NewDB(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres database: %w", err)
		}
		return database, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
