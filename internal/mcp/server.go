package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Generate(ctx context.Context, req activity.Request) (activity.Result, error)
}

// Config contains server configuration.
type Config struct {
	Activities    ActivityService
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "labcoats",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// The first middleware in a call is outermost, so the request ID is set before logging sees it.
	server.AddReceivingMiddleware(
		requestIDMiddleware(cfg.TransportMode),
		trafficLoggingMiddleware(cfg.Logger, "inbound"),
	)
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Activities)

	return server
}
