package testutil

import (
	"context"
	"strings"

	"github.com/jurisflow/jurisflow/internal/domain/matter"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryMatterStore implements matter.Repository
type InMemoryMatterStore struct {
	*InMemoryStore[*matter.Matter]
}

// NewInMemoryMatterStore creates a new in-memory matter store
func NewInMemoryMatterStore() *InMemoryMatterStore {
	return &InMemoryMatterStore{
		InMemoryStore: NewInMemoryStore[*matter.Matter](),
	}
}

func copyMatter(m *matter.Matter) *matter.Matter {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Metadata = lo.Assign(types.Metadata{}, m.Metadata)
	return &cp
}

func (s *InMemoryMatterStore) Create(ctx context.Context, m *matter.Matter) error {
	return s.InMemoryStore.Create(ctx, m.ID, copyMatter(m))
}

func (s *InMemoryMatterStore) GetByID(ctx context.Context, id string) (*matter.Matter, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyMatter(m), nil
}

func (s *InMemoryMatterStore) Update(ctx context.Context, m *matter.Matter) error {
	return s.InMemoryStore.Update(ctx, m.ID, copyMatter(m))
}

func (s *InMemoryMatterStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryMatterStore) ListByFilter(ctx context.Context, filter *types.MatterFilter) ([]*matter.Matter, error) {
	items, err := s.InMemoryStore.List(ctx, filter, matterFilterFn, matterSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(m *matter.Matter, _ int) *matter.Matter {
		return copyMatter(m)
	}), nil
}

func (s *InMemoryMatterStore) Count(ctx context.Context, filter *types.MatterFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, matterFilterFn)
	return int64(count), err
}

func matterFilterFn(ctx context.Context, m *matter.Matter, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && m.TenantID != tenantID {
		return false
	}
	if m.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.MatterFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.MatterIDs) > 0 && !lo.Contains(f.MatterIDs, m.ID) {
		return false
	}
	if f.ClientID != "" && m.ClientID != f.ClientID {
		return false
	}
	if f.MatterStatus != "" && m.MatterStatus != f.MatterStatus {
		return false
	}
	if f.AssignedTo != "" && m.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Title), needle) &&
			!strings.Contains(strings.ToLower(m.Reference), needle) &&
			!strings.Contains(strings.ToLower(m.OpposingParty), needle) {
			return false
		}
	}
	return true
}

func matterSortFn(i, j *matter.Matter) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
