package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/alert"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryAlertStore implements alert.Repository
type InMemoryAlertStore struct {
	*InMemoryStore[*alert.Alert]
}

// NewInMemoryAlertStore creates a new in-memory alert store
func NewInMemoryAlertStore() *InMemoryAlertStore {
	return &InMemoryAlertStore{
		InMemoryStore: NewInMemoryStore[*alert.Alert](),
	}
}

func copyAlert(a *alert.Alert) *alert.Alert {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

func (s *InMemoryAlertStore) Create(ctx context.Context, a *alert.Alert) error {
	return s.InMemoryStore.Create(ctx, a.ID, copyAlert(a))
}

func (s *InMemoryAlertStore) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyAlert(a), nil
}

func (s *InMemoryAlertStore) Update(ctx context.Context, a *alert.Alert) error {
	return s.InMemoryStore.Update(ctx, a.ID, copyAlert(a))
}

func (s *InMemoryAlertStore) ListByFilter(ctx context.Context, filter *types.AlertFilter) ([]*alert.Alert, error) {
	items, err := s.InMemoryStore.List(ctx, filter, alertFilterFn, alertSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(a *alert.Alert, _ int) *alert.Alert {
		return copyAlert(a)
	}), nil
}

func (s *InMemoryAlertStore) Count(ctx context.Context, filter *types.AlertFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, alertFilterFn)
	return int64(count), err
}

func (s *InMemoryAlertStore) ExistsForReference(ctx context.Context, alertType types.AlertType, referenceID string) (bool, error) {
	matchFn := func(ctx context.Context, a *alert.Alert, _ interface{}) bool {
		return a.AlertType == alertType &&
			a.ReferenceID == referenceID &&
			a.TenantID == types.GetTenantID(ctx)
	}
	count, err := s.InMemoryStore.Count(ctx, nil, matchFn)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func alertFilterFn(ctx context.Context, a *alert.Alert, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && a.TenantID != tenantID {
		return false
	}
	if a.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.AlertFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.AlertIDs) > 0 && !lo.Contains(f.AlertIDs, a.ID) {
		return false
	}
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if f.AlertType != "" && a.AlertType != f.AlertType {
		return false
	}
	if f.Unread != nil && *f.Unread == a.IsRead() {
		return false
	}
	return true
}

func alertSortFn(i, j *alert.Alert) bool {
	return i.DueAt.Before(j.DueAt)
}
