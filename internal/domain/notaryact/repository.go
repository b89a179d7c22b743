package notaryact

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, act *Act) error
	GetByID(ctx context.Context, id string) (*Act, error)
	Update(ctx context.Context, act *Act) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.NotaryActFilter) ([]*Act, error)
	Count(ctx context.Context, filter *types.NotaryActFilter) (int64, error)
}
