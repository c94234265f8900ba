// Package llm selects the text-generation provider behind activity.Generator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/llm/gemini"
	"github.com/rpggio/labcoats/internal/llm/openai"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ErrUnknownProvider indicates a provider name that isn't supported.
var ErrUnknownProvider = errors.New("unknown generation provider")

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// Unavailable is a generator that always fails; it stands in when credentials are missing.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(context.Context, activity.GenerateRequest) (string, error) {
	return "", fmt.Errorf("%s: %w", u.Reason, activity.ErrUpstreamUnavailable)
}

// New builds the configured generator. The returned close func is never nil.
// Missing credentials are not an error: every request then takes the fallback path.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (activity.Generator, func() error, error) {
	noop := func() error { return nil }
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		switch provider {
		case ProviderOpenAI, ProviderGemini:
		default:
			return nil, noop, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
		}
		if logger != nil {
			logger.Warn("no API key configured, serving fallback activities only", "provider", provider)
		}
		return Unavailable{Reason: provider + ": missing credentials"}, noop, nil
	}

	switch provider {
	case ProviderOpenAI:
		client, err := openai.New(openai.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Timeout: cfg.Timeout})
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil
	case ProviderGemini:
		client, err := gemini.New(ctx, cfg.APIKey)
		if err != nil {
			return nil, noop, err
		}
		return client, client.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
