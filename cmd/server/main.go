package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeren/bizguard-leads/config"
	"github.com/akeren/bizguard-leads/domain"
	"github.com/akeren/bizguard-leads/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var autoMigrate bool
	flag.BoolVar(&autoMigrate, "auto-migrate", false, "create the submissions table with gorm before serving (dev and test only)")
	flag.BoolVar(&autoMigrate, "m", false, "shorthand for -auto-migrate")
	flag.Parse()

	logger := log.NewLoggerWithJSONOutput()
	logger.Info("Lead capture server starting", "auto_migrate", autoMigrate)

	if err := run(logger, autoMigrate); err != nil {
		logger.Error("Lead capture server stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *log.Logger, autoMigrate bool) error {
	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrate)
	if err != nil {
		return err
	}
	defer appConfig.Cleanup()

	if err := domain.SetupCoreDomain(appConfig); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining requests", "timeout", shutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	logger.Info("Graceful shutdown completed")
	return nil
}
