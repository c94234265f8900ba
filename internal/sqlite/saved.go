package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/repository"
)

// SavedKey is the slot holding the saved-activity list.
const SavedKey = "little-lab-coats-saved"

// SavedRepository implements saved.Repository on a single KV slot.
// The slot is read once on first use and rewritten wholesale on every append.
type SavedRepository struct {
	kv *KVStore

	mu     sync.Mutex
	loaded bool
	items  []activity.Activity
}

// NewSavedRepository creates a new SavedRepository
func NewSavedRepository(db *DB) *SavedRepository {
	return &SavedRepository{kv: NewKVStore(db)}
}

// Load returns the saved activities, oldest first
func (r *SavedRepository) Load(ctx context.Context) ([]activity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return append([]activity.Activity(nil), r.items...), nil
}

// Append adds an activity to the end of the list and persists the whole list
func (r *SavedRepository) Append(ctx context.Context, act activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	updated := append(append([]activity.Activity(nil), r.items...), act)
	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode saved activities: %w", err)
	}
	if err := r.kv.Put(ctx, SavedKey, string(data)); err != nil {
		return err
	}
	r.items = updated
	return nil
}

func (r *SavedRepository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	raw, err := r.kv.Get(ctx, SavedKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		r.items = nil
	case err != nil:
		return err
	default:
		var items []activity.Activity
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return fmt.Errorf("%w: %s: %v", repository.ErrCorrupt, SavedKey, err)
		}
		r.items = items
	}
	r.loaded = true
	return nil
}
