package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloud-ru/mcp-emi-go/internal/config"
	"github.com/cloud-ru/mcp-emi-go/internal/logging"
	"github.com/cloud-ru/mcp-emi-go/internal/server"
	"github.com/cloud-ru/mcp-emi-go/internal/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	shutdownTracing, err := tracing.InitTracing(context.Background(), cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		logger.Error("failed to init tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	httpServer := server.New(cfg, logger, tracing.Tracer).HTTPServer()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-serverErr:
		logger.Error("HTTP server failed", slog.String("error", err.Error()))
		exitCode = 1
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server exited")
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
