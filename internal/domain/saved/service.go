package saved

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// RecentLimit is how many saved activities the summary panel shows.
const RecentLimit = 3

// Service handles saved-activity operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new saved-activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save appends an activity to the saved list. Duplicates are kept.
func (s *Service) Save(ctx context.Context, act activity.Activity) error {
	if strings.TrimSpace(act.Name) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Append(ctx, act); err != nil {
		return fmt.Errorf("saving activity: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug("activity saved", "name", act.Name)
	}
	return nil
}

// List returns every saved activity, oldest first.
func (s *Service) List(ctx context.Context) ([]activity.Activity, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading saved activities: %w", err)
	}
	return items, nil
}

// Recent returns the last RecentLimit saved activities, oldest first.
func (s *Service) Recent(ctx context.Context) ([]activity.Activity, error) {
	_, recent, err := s.Summary(ctx)
	return recent, err
}

// Summary returns the total saved count and the last RecentLimit activities, from one load.
func (s *Service) Summary(ctx context.Context) (int, []activity.Activity, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, nil, err
	}
	return len(items), lastN(items, RecentLimit), nil
}

func lastN(items []activity.Activity, n int) []activity.Activity {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
