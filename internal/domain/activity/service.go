package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// publishTimeout bounds one event publish, which runs after the response is produced.
const publishTimeout = 5 * time.Second

// Fallback reasons reported to metrics and events.
const (
	ReasonUpstreamUnavailable = "upstream_unavailable"
	ReasonMalformedResponse   = "malformed_response"
)

// Service turns material lists into activities.
type Service struct {
	generator Generator
	selector  *FallbackSelector
	publisher EventPublisher
	metrics   MetricsRecorder
	opts      Options
	logger    *slog.Logger
	now       func() time.Time

	pending sync.WaitGroup
}

// Config wires the service's collaborators. Generator is required; the rest are optional.
type Config struct {
	Generator Generator
	Selector  *FallbackSelector
	Publisher EventPublisher
	Metrics   MetricsRecorder
	Options   Options
	Logger    *slog.Logger
}

// NewService creates a new activity service.
func NewService(cfg Config) *Service {
	selector := cfg.Selector
	if selector == nil {
		selector = NewFallbackSelector(nil)
	}
	return &Service{
		generator: cfg.Generator,
		selector:  selector,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		opts:      cfg.Options.withDefaults(),
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// Request describes one activity request from a caller.
type Request struct {
	Materials []string
	RequestID string
}

// NormalizeMaterials trims names and drops blanks, keeping order.
func NormalizeMaterials(materials []string) []string {
	out := make([]string, 0, len(materials))
	for _, m := range materials {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Generate asks the generation service for one activity and falls back to a built-in one on any fault.
// The only error it returns is ErrInvalidInput.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	materials := NormalizeMaterials(req.Materials)
	if len(materials) == 0 {
		return Result{}, ErrInvalidInput
	}

	start := s.now()
	act, err := s.generate(ctx, materials)

	result := Result{Activity: act, Outcome: OutcomeGenerated}
	if err != nil {
		result = Result{
			Activity: s.selector.Select(materials),
			Outcome:  OutcomeFallback,
			Reason:   reasonFor(err),
		}
		s.warn("generation failed, using fallback activity",
			"request_id", req.RequestID,
			"reason", result.Reason,
			"fallback", result.Activity.Name,
			"error", err,
		)
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(result.Outcome, result.Reason, s.now().Sub(start).Seconds())
	}
	s.publish(ctx, req.RequestID, materials, result)

	return result, nil
}

func (s *Service) generate(ctx context.Context, materials []string) (Activity, error) {
	if s.generator == nil {
		return Activity{}, fmt.Errorf("no generator configured: %w", ErrUpstreamUnavailable)
	}

	raw, err := s.generator.Generate(ctx, GenerateRequest{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
		Prompt:      BuildPrompt(materials),
	})
	if err != nil {
		if errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrMalformedResponse) {
			return Activity{}, err
		}
		return Activity{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	act, err := ExtractActivity(raw)
	if err != nil {
		return Activity{}, err
	}
	if err := Validate(act); err != nil {
		return Activity{}, err
	}
	return act, nil
}

// publish sends the outcome event in the background so a slow or unreachable broker
// never delays the caller.
func (s *Service) publish(ctx context.Context, requestID string, materials []string, result Result) {
	if s.publisher == nil {
		return
	}
	event := GenerationEvent{
		RequestID:    requestID,
		Materials:    materials,
		Outcome:      result.Outcome,
		Reason:       result.Reason,
		ActivityName: result.Activity.Name,
		OccurredAt:   s.now().UTC(),
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := s.publisher.PublishGeneration(pubCtx, event); err != nil {
			s.warn("publishing generation event", "request_id", requestID, "error", err)
		}
	}()
}

// Wait blocks until in-flight event publishes finish.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) warn(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg, args...)
}

func reasonFor(err error) string {
	if errors.Is(err, ErrMalformedResponse) {
		return ReasonMalformedResponse
	}
	return ReasonUpstreamUnavailable
}
