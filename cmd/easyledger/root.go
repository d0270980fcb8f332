package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/easyledger/internal/platform/config"
	"github.com/SscSPs/easyledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "easyledger",
	Short: "EasyLedger backend: invoicing and expenses for small businesses",
	Long: `EasyLedger serves the invoicing and expense tracking API and carries
the operational commands that go with it: schema migrations, user
provisioning and the overdue invoice sweep.

Configuration is read from the environment and an optional .env file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		newLogger().Error("Command execution failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, usersCmd, invoicesCmd)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// bootstrap loads config and a logger, which every subcommand needs.
func bootstrap() (*config.Config, *slog.Logger, error) {
	logger := newLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger, nil
}

func openPool(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pool, nil
}
