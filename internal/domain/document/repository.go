package document

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, document *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)
	Count(ctx context.Context, filter *types.DocumentFilter) (int64, error)
}
