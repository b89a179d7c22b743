package testutil

import (
	"context"
	"strings"

	"github.com/jurisflow/jurisflow/internal/domain/client"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Metadata = lo.Assign(types.Metadata{}, c.Metadata)
	return &cp
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) GetByID(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyClient(c), nil
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Update(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryClientStore) ListByFilter(ctx context.Context, filter *types.ClientFilter) ([]*client.Client, error) {
	items, err := s.InMemoryStore.List(ctx, filter, clientFilterFn, clientSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c *client.Client, _ int) *client.Client {
		return copyClient(c)
	}), nil
}

func (s *InMemoryClientStore) Count(ctx context.Context, filter *types.ClientFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, clientFilterFn)
	return int64(count), err
}

func clientFilterFn(ctx context.Context, c *client.Client, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && c.TenantID != tenantID {
		return false
	}
	if c.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.ClientFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.ClientIDs) > 0 && !lo.Contains(f.ClientIDs, c.ID) {
		return false
	}
	if f.ClientType != "" && c.ClientType != f.ClientType {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.DisplayName()), needle) &&
			!strings.Contains(strings.ToLower(c.Phone), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			return false
		}
	}
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && c.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && c.CreatedAt.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func clientSortFn(i, j *client.Client) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
