package permission

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Repository stores permission matrix rows, scoped to the context
// tenant like every other repository.
type Repository interface {
	// CreateBulk inserts a batch of rules, used when seeding a firm's
	// default matrix at onboarding
	CreateBulk(ctx context.Context, rules []*Rule) error
	// ListByTenant returns every rule of the caller's firm
	ListByTenant(ctx context.Context) ([]*Rule, error)
	// ReplaceTier swaps out all rules of one tier for the given grants
	ReplaceTier(ctx context.Context, tier types.PermissionTier, permissions []types.Permission) error
}
