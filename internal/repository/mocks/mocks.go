package mocks

import (
	"context"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// Generator is a mock for activity.Generator.
type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, req activity.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// EventPublisher is a mock for activity.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishGeneration(ctx context.Context, event activity.GenerationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// SavedRepository is a mock for saved.Repository.
type SavedRepository struct {
	mock.Mock
}

func (m *SavedRepository) Load(ctx context.Context) ([]activity.Activity, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SavedRepository) Append(ctx context.Context, act activity.Activity) error {
	args := m.Called(ctx, act)
	return args.Error(0)
}
