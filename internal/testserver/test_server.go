package testserver

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/mcp"
	"github.com/rpggio/labcoats/internal/transport"
	"github.com/rpggio/labcoats/internal/web"
)

// ScriptedGenerator replays a fixed response and records the prompts it received.
type ScriptedGenerator struct {
	Response string
	Err      error

	mu       sync.Mutex
	requests []activity.GenerateRequest
}

func (g *ScriptedGenerator) Generate(_ context.Context, req activity.GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.Response, g.Err
}

// Requests returns the generation requests seen so far.
func (g *ScriptedGenerator) Requests() []activity.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]activity.GenerateRequest(nil), g.requests...)
}

// FixedRand always picks the same fallback index.
type FixedRand int

func (f FixedRand) IntN(n int) int { return int(f) % n }

type TestServer struct {
	Server    *httptest.Server
	Generator *ScriptedGenerator
	Service   *activity.Service
}

// Option adjusts the activity service wiring.
type Option func(*activity.Config)

// WithRand makes fallback selection deterministic.
func WithRand(rnd activity.Rand) Option {
	return func(cfg *activity.Config) {
		cfg.Selector = activity.NewFallbackSelector(rnd)
	}
}

// WithPublisher attaches an event publisher.
func WithPublisher(pub activity.EventPublisher) Option {
	return func(cfg *activity.Config) {
		cfg.Publisher = pub
	}
}

// New starts an httptest server over the full router (API, web UI, MCP) backed by gen.
func New(t *testing.T, gen *ScriptedGenerator, opts ...Option) *TestServer {
	t.Helper()

	if gen == nil {
		gen = &ScriptedGenerator{}
	}
	cfg := activity.Config{Generator: gen}
	for _, opt := range opts {
		opt(&cfg)
	}
	svc := activity.NewService(cfg)

	mcpServer := mcp.NewServer(mcp.Config{Activities: svc, TransportMode: "http"})
	server := httptest.NewServer(transport.NewServer(transport.Config{
		Activities: svc,
		Web:        web.Handler(),
		MCP:        mcp.NewHTTPHandler(mcpServer),
	}))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		Generator: gen,
		Service:   svc,
	}
}
