package bailiffreport

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.BailiffReportFilter) ([]*Report, error)
	Count(ctx context.Context, filter *types.BailiffReportFilter) (int64, error)
}
