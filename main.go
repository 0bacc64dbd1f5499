package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tournevent/dhlbridge/internal/server"
	"github.com/tournevent/dhlbridge/pkg/carrier"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "dhlbridge",
	Short:   "DHL XML-PI Bridge - shipping rate quote service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	registry, err := initCarrierRegistry(cfg, logger, tracer)
	if err != nil {
		return fmt.Errorf("initializing carriers: %w", err)
	}

	logger.Info("Starting DHL Bridge",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.String("settlement_currency", cfg.DHLSettlementCurrency),
	)

	srv := server.New(server.Config{
		Port: cfg.Port,
		Credentials: carrier.Credentials{
			Login:    cfg.DHLSiteID,
			Password: cfg.DHLPassword,
		},
	}, registry, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
