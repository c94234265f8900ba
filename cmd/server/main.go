package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/labcoats/internal/config"
	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/events"
	"github.com/rpggio/labcoats/internal/llm"
	"github.com/rpggio/labcoats/internal/mcp"
	"github.com/rpggio/labcoats/internal/observability"
	"github.com/rpggio/labcoats/internal/transport"
	"github.com/rpggio/labcoats/internal/web"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path, maxLogSizeBytes, keepLogSizeBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, closeGenerator, err := llm.New(ctx, llm.Config{
		Provider: cfg.Generation.Provider,
		APIKey:   cfg.Generation.APIKey(),
		BaseURL:  cfg.Generation.OpenAIBaseURL,
		Timeout:  cfg.Generation.Timeout,
	}, logger)
	if err != nil {
		logger.Error("failed to create generator", "error", err)
		os.Exit(1)
	}
	defer closeGenerator()

	var publisher activity.EventPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("publishing generation events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	activitySvc := activity.NewService(activity.Config{
		Generator: generator,
		Publisher: publisher,
		Metrics:   observability.Generations{},
		Options: activity.Options{
			Model:       cfg.Generation.Model,
			Temperature: cfg.Generation.Temperature,
			MaxTokens:   cfg.Generation.MaxTokens,
		},
		Logger: logger,
	})
	// Drain background event publishes before the Kafka writer closes.
	defer activitySvc.Wait()

	mcpServer := mcp.NewServer(mcp.Config{
		Activities:    activitySvc,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, logger, mcpServer)
		return
	}

	router := transport.NewServer(transport.Config{
		Activities: activitySvc,
		Web:        web.Handler(),
		MCP:        mcp.NewHTTPHandler(mcpServer),
		CORSOrigin: cfg.Server.CORSOrigin,
		Logger:     logger,
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Generation.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	runHTTPMode(ctx, logger, httpServer)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, server *http.Server) {
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
