package event

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.EventFilter) ([]*Event, error)
	Count(ctx context.Context, filter *types.EventFilter) (int64, error)
}
