package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/config"
	"github.com/BruksfildServices01/restaurant-floor/internal/logging"
)

var (
	// Global flags
	logLevel string
	dbURL    string

	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "floorctl",
	Short: "Restaurant floor terminal",
	Long: `floorctl runs the restaurant floor terminal: the HTTP surface for the
floor UI, the schema migration, the persisted staff session and the live
waitlist board.

Configuration is read from the environment (and a .env file when present).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if dbURL != "" {
			cfg.DBUrl = dbURL
		}
		log = logging.New(cfg.LogLevel, cfg.LogFormat)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL (overrides DATABASE_URL)")
}

// connect builds the App and recovers the persisted session. The caller
// must run the returned close func.
func connect(ctx context.Context) (*app.App, func(context.Context) error, error) {
	a, closeAll, err := app.Connect(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Session.LoadSession(ctx); err != nil {
		_ = closeAll(ctx)
		return nil, nil, err
	}
	return a, closeAll, nil
}

// withApp connects, runs fn and closes every backend.
func withApp(cmd *cobra.Command, fn func(context.Context, *app.App) error) error {
	ctx := cmd.Context()
	a, closeAll, err := connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeAll(context.Background()); err != nil {
			log.WithError(err).Warn("close backends")
		}
	}()
	return fn(ctx, a)
}
