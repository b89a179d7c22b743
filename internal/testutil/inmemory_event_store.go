package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/event"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryEventStore implements event.Repository
type InMemoryEventStore struct {
	*InMemoryStore[*event.Event]
}

// NewInMemoryEventStore creates a new in-memory event store
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		InMemoryStore: NewInMemoryStore[*event.Event](),
	}
}

func copyEvent(e *event.Event) *event.Event {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

func (s *InMemoryEventStore) Create(ctx context.Context, e *event.Event) error {
	return s.InMemoryStore.Create(ctx, e.ID, copyEvent(e))
}

func (s *InMemoryEventStore) GetByID(ctx context.Context, id string) (*event.Event, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyEvent(e), nil
}

func (s *InMemoryEventStore) Update(ctx context.Context, e *event.Event) error {
	return s.InMemoryStore.Update(ctx, e.ID, copyEvent(e))
}

func (s *InMemoryEventStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryEventStore) ListByFilter(ctx context.Context, filter *types.EventFilter) ([]*event.Event, error) {
	items, err := s.InMemoryStore.List(ctx, filter, eventFilterFn, eventSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(e *event.Event, _ int) *event.Event {
		return copyEvent(e)
	}), nil
}

func (s *InMemoryEventStore) Count(ctx context.Context, filter *types.EventFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, eventFilterFn)
	return int64(count), err
}

func eventFilterFn(ctx context.Context, e *event.Event, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && e.TenantID != tenantID {
		return false
	}
	if e.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.EventFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.EventIDs) > 0 && !lo.Contains(f.EventIDs, e.ID) {
		return false
	}
	if f.MatterID != "" && e.MatterID != f.MatterID {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	// The time range applies to the event start, not the row creation
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && e.StartsAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && e.StartsAt.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func eventSortFn(i, j *event.Event) bool {
	return i.StartsAt.Before(j.StartsAt)
}
