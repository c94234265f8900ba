package saved

import (
	"context"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// Repository stores the saved-activity list.
type Repository interface {
	Load(ctx context.Context) ([]activity.Activity, error)
	Append(ctx context.Context, act activity.Activity) error
}
