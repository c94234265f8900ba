package saved

import (
	"context"
	"sync"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// MemoryRepository keeps saved activities in process memory.
type MemoryRepository struct {
	mu    sync.Mutex
	items []activity.Activity
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) ([]activity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]activity.Activity(nil), r.items...), nil
}

func (r *MemoryRepository) Append(_ context.Context, act activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, act)
	return nil
}
