package alert

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, alert *Alert) error
	GetByID(ctx context.Context, id string) (*Alert, error)
	Update(ctx context.Context, alert *Alert) error
	ListByFilter(ctx context.Context, filter *types.AlertFilter) ([]*Alert, error)
	Count(ctx context.Context, filter *types.AlertFilter) (int64, error)
	// ExistsForReference reports whether an alert of the given type was
	// already generated for the reference row. Keeps the generation job
	// idempotent.
	ExistsForReference(ctx context.Context, alertType types.AlertType, referenceID string) (bool, error)
}
