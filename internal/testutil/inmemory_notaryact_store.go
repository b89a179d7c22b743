package testutil

import (
	"context"
	"strings"

	"github.com/jurisflow/jurisflow/internal/domain/notaryact"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryNotaryActStore implements notaryact.Repository
type InMemoryNotaryActStore struct {
	*InMemoryStore[*notaryact.Act]
}

// NewInMemoryNotaryActStore creates a new in-memory notary act store
func NewInMemoryNotaryActStore() *InMemoryNotaryActStore {
	return &InMemoryNotaryActStore{
		InMemoryStore: NewInMemoryStore[*notaryact.Act](),
	}
}

func copyNotaryAct(a *notaryact.Act) *notaryact.Act {
	if a == nil {
		return nil
	}
	cp := *a
	if a.SignedAt != nil {
		signedAt := *a.SignedAt
		cp.SignedAt = &signedAt
	}
	return &cp
}

func (s *InMemoryNotaryActStore) Create(ctx context.Context, a *notaryact.Act) error {
	return s.InMemoryStore.Create(ctx, a.ID, copyNotaryAct(a))
}

func (s *InMemoryNotaryActStore) GetByID(ctx context.Context, id string) (*notaryact.Act, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyNotaryAct(a), nil
}

func (s *InMemoryNotaryActStore) Update(ctx context.Context, a *notaryact.Act) error {
	return s.InMemoryStore.Update(ctx, a.ID, copyNotaryAct(a))
}

func (s *InMemoryNotaryActStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryNotaryActStore) ListByFilter(ctx context.Context, filter *types.NotaryActFilter) ([]*notaryact.Act, error) {
	items, err := s.InMemoryStore.List(ctx, filter, notaryActFilterFn, notaryActSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(a *notaryact.Act, _ int) *notaryact.Act {
		return copyNotaryAct(a)
	}), nil
}

func (s *InMemoryNotaryActStore) Count(ctx context.Context, filter *types.NotaryActFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, notaryActFilterFn)
	return int64(count), err
}

func notaryActFilterFn(ctx context.Context, a *notaryact.Act, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && a.TenantID != tenantID {
		return false
	}
	if a.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.NotaryActFilter)
	if !ok || f == nil {
		return true
	}

	if f.MatterID != "" && a.MatterID != f.MatterID {
		return false
	}
	if f.ClientID != "" && a.ClientID != f.ClientID {
		return false
	}
	if f.ActType != "" && a.ActType != f.ActType {
		return false
	}
	if f.Signed != nil && a.Signed != *f.Signed {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.ActNumber), needle) {
			return false
		}
	}
	// The time range applies to the act date, not the row creation
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && a.ActDate.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && a.ActDate.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func notaryActSortFn(i, j *notaryact.Act) bool {
	return i.ActDate.Before(j.ActDate)
}
