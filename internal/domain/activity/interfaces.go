package activity

import "context"

// GenerateRequest is a single call to a text-generation service.
type GenerateRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Prompt      string
}

// Generator produces raw text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// EventPublisher receives one event per completed generation request.
type EventPublisher interface {
	PublishGeneration(ctx context.Context, event GenerationEvent) error
}

// MetricsRecorder observes generation outcomes.
type MetricsRecorder interface {
	ObserveGeneration(outcome Outcome, reason string, seconds float64)
}
