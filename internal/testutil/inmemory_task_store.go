package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/task"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryTaskStore implements task.Repository
type InMemoryTaskStore struct {
	*InMemoryStore[*task.Task]
}

// NewInMemoryTaskStore creates a new in-memory task store
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		InMemoryStore: NewInMemoryStore[*task.Task](),
	}
}

func copyTask(t *task.Task) *task.Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func (s *InMemoryTaskStore) Create(ctx context.Context, t *task.Task) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTask(t))
}

func (s *InMemoryTaskStore) GetByID(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTask(t), nil
}

func (s *InMemoryTaskStore) Update(ctx context.Context, t *task.Task) error {
	return s.InMemoryStore.Update(ctx, t.ID, copyTask(t))
}

func (s *InMemoryTaskStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryTaskStore) ListByFilter(ctx context.Context, filter *types.TaskFilter) ([]*task.Task, error) {
	items, err := s.InMemoryStore.List(ctx, filter, taskFilterFn, taskSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(t *task.Task, _ int) *task.Task {
		return copyTask(t)
	}), nil
}

func (s *InMemoryTaskStore) Count(ctx context.Context, filter *types.TaskFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, taskFilterFn)
	return int64(count), err
}

func taskFilterFn(ctx context.Context, t *task.Task, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && t.TenantID != tenantID {
		return false
	}
	if t.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.TaskFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.TaskIDs) > 0 && !lo.Contains(f.TaskIDs, t.ID) {
		return false
	}
	if f.MatterID != "" && t.MatterID != f.MatterID {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.TaskStatus != "" && t.TaskStatus != f.TaskStatus {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	// The time range applies to the due date
	if f.TimeRangeFilter != nil && t.DueDate != nil {
		if f.StartTime != nil && t.DueDate.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && t.DueDate.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func taskSortFn(i, j *task.Task) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
