package matter

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, matter *Matter) error
	GetByID(ctx context.Context, id string) (*Matter, error)
	Update(ctx context.Context, matter *Matter) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.MatterFilter) ([]*Matter, error)
	Count(ctx context.Context, filter *types.MatterFilter) (int64, error)
}
