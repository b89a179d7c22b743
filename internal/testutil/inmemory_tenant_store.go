package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/tenant"
)

// InMemoryTenantStore implements tenant.Repository
type InMemoryTenantStore struct {
	*InMemoryStore[*tenant.Tenant]
}

// NewInMemoryTenantStore creates a new in-memory tenant store
func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		InMemoryStore: NewInMemoryStore[*tenant.Tenant](),
	}
}

func copyTenant(t *tenant.Tenant) *tenant.Tenant {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (s *InMemoryTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTenant(t))
}

func (s *InMemoryTenantStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTenant(t), nil
}

func (s *InMemoryTenantStore) Update(ctx context.Context, t *tenant.Tenant) error {
	return s.InMemoryStore.Update(ctx, t.ID, copyTenant(t))
}
