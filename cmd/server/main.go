package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/server"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "splitledger",
		Short:         "Shared-expense ledger server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg = config.Load()
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	rootCmd.AddCommand(
		newServeCmd(func() *config.Config { return cfg }),
		newMigrateCmd(func() *config.Config { return cfg }),
	)
	return rootCmd
}

func newServeCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to initialize AMQP publisher: %w", err)
		}
		publisher = amqpPublisher
		slog.Info("Publishing ledger events", "exchange", cfg.AMQPExchange)
	} else {
		slog.Info("Ledger events disabled - no AMQP_URL provided")
	}
	defer publisher.Close()

	handler := server.NewRouter(ctx, cfg, server.Deps{
		Store:     store,
		JWT:       jwtManager,
		Metrics:   metrics.New(),
		Publisher: publisher,
		Logger:    slog.Default(),
	})

	return server.Run(ctx, server.New(cfg.Addr(), handler))
}

func newMigrateCmd(getConfig func() *config.Config) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = getConfig().DBPath
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			if err := sqlite.RunMigrations(dbPath); err != nil {
				return err
			}
			slog.Info("Migrations applied", "database", dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (defaults to DB_PATH)")
	return cmd
}
