package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wilma-platform/wilma-backend-go/internal/config"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wilma-api",
	Short: "Job and placement tracking API",
	Long: `wilma-api serves the jobs, placements, expressions of interest and
position applications API, and carries the maintenance commands that go with it.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(os.Stdout, cfg.App.Name, cfg.App.Version, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	return &app{cfg: cfg, logger: log}, nil
}

func (a *app) connect(ctx context.Context) (*database.DB, error) {
	db, err := database.NewPostgreSQLDB(ctx, a.cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(a.cfg.Database.MaxConns),
		MinConns: int32(a.cfg.Database.MinConns),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	a.logger.Info("connected to database",
		"host", a.cfg.Database.Host,
		"name", a.cfg.Database.Name,
	)

	return db, nil
}
