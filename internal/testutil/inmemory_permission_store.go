package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/permission"
	"github.com/jurisflow/jurisflow/internal/types"
)

// InMemoryPermissionStore implements permission.Repository
type InMemoryPermissionStore struct {
	*InMemoryStore[*permission.Rule]
}

// NewInMemoryPermissionStore creates a new in-memory permission store
func NewInMemoryPermissionStore() *InMemoryPermissionStore {
	return &InMemoryPermissionStore{
		InMemoryStore: NewInMemoryStore[*permission.Rule](),
	}
}

func copyRule(r *permission.Rule) *permission.Rule {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (s *InMemoryPermissionStore) CreateBulk(ctx context.Context, rules []*permission.Rule) error {
	for _, r := range rules {
		if err := s.InMemoryStore.Create(ctx, r.ID, copyRule(r)); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryPermissionStore) ListByTenant(ctx context.Context) ([]*permission.Rule, error) {
	tenantID := types.GetTenantID(ctx)
	rules, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, r *permission.Rule, _ interface{}) bool {
		return r.TenantID == tenantID && r.Status != types.StatusDeleted
	}, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*permission.Rule, 0, len(rules))
	for _, r := range rules {
		result = append(result, copyRule(r))
	}
	return result, nil
}

func (s *InMemoryPermissionStore) ReplaceTier(ctx context.Context, tier types.PermissionTier, permissions []types.Permission) error {
	tenantID := types.GetTenantID(ctx)
	existing, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, r *permission.Rule, _ interface{}) bool {
		return r.TenantID == tenantID && r.Tier == tier
	}, nil)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if err := s.InMemoryStore.Delete(ctx, r.ID); err != nil {
			return err
		}
	}

	rules := make([]*permission.Rule, 0, len(permissions))
	for _, p := range permissions {
		rules = append(rules, permission.NewRule(ctx, tier, p))
	}
	return s.CreateBulk(ctx, rules)
}
