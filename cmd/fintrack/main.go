package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg)

	finance, err := cli.InitFinance(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("Failed to start finance session", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, finance, logger, apphttp.WithWriteLimit(cfg.RateLimitPerMinute))

	_, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := finance.Close(); err != nil {
			logger.Error("Finance session close error", "error", err)
		}
	})

	logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend, "amqp_enabled", cfg.AMQPEnabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		_ = finance.Close()
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
