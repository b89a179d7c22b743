package task

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.TaskFilter) ([]*Task, error)
	Count(ctx context.Context, filter *types.TaskFilter) (int64, error)
}
