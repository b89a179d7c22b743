package rbac

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/domain/permission"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

const matrixCacheExpiry = time.Minute

// RBACService answers permission checks against the caller's firm
// matrix. Firms without stored rows run on the shipped defaults, so
// the gate works before onboarding has seeded anything.
type RBACService struct {
	// defaults is the shipped matrix, also used as the seed at firm
	// onboarding (hot path - O(1))
	defaults map[types.PermissionTier]map[types.Permission]bool
	repo     permission.Repository
	cache    cache.Cache
}

// tierGrants is the shipped tier to permission mapping. Unknown tiers
// resolve to an empty set, so every check fails closed.
var tierGrants = map[types.PermissionTier][]types.Permission{
	// Admin is handled by the override in HasPermission; the entry
	// exists so ValidateTier accepts it.
	types.PermissionTierAdmin: {},
	types.PermissionTierPartner: {
		types.PermissionViewMatters, types.PermissionCreateMatters, types.PermissionEditMatters, types.PermissionDeleteMatters,
		types.PermissionViewClients, types.PermissionCreateClients, types.PermissionEditClients, types.PermissionDeleteClients,
		types.PermissionViewDocuments, types.PermissionCreateDocuments, types.PermissionEditDocuments, types.PermissionDeleteDocuments,
		types.PermissionViewInvoices, types.PermissionCreateInvoices, types.PermissionEditInvoices, types.PermissionDeleteInvoices,
		types.PermissionViewEvents, types.PermissionCreateEvents, types.PermissionEditEvents, types.PermissionDeleteEvents,
		types.PermissionViewTasks, types.PermissionCreateTasks, types.PermissionEditTasks, types.PermissionDeleteTasks,
		types.PermissionManageUsers, types.PermissionViewAudit, types.PermissionRecordPayments, types.PermissionUploadDocuments,
	},
	types.PermissionTierAssociate: {
		types.PermissionViewMatters, types.PermissionCreateMatters, types.PermissionEditMatters,
		types.PermissionViewClients, types.PermissionCreateClients, types.PermissionEditClients,
		types.PermissionViewDocuments, types.PermissionCreateDocuments, types.PermissionEditDocuments,
		types.PermissionViewInvoices, types.PermissionCreateInvoices, types.PermissionEditInvoices,
		types.PermissionViewEvents, types.PermissionCreateEvents, types.PermissionEditEvents,
		types.PermissionViewTasks, types.PermissionCreateTasks, types.PermissionEditTasks,
		types.PermissionRecordPayments, types.PermissionUploadDocuments,
	},
	types.PermissionTierFrontDesk: {
		types.PermissionViewMatters,
		types.PermissionViewClients, types.PermissionCreateClients, types.PermissionEditClients,
		types.PermissionViewEvents, types.PermissionCreateEvents, types.PermissionEditEvents,
		types.PermissionViewTasks,
		types.PermissionViewInvoices, types.PermissionRecordPayments,
	},
	types.PermissionTierReadOnly: {
		types.PermissionViewMatters,
		types.PermissionViewClients,
		types.PermissionViewDocuments,
		types.PermissionViewInvoices,
		types.PermissionViewEvents,
		types.PermissionViewTasks,
	},
	types.PermissionTierClientPortal: {
		types.PermissionViewMatters,
		types.PermissionViewDocuments,
		types.PermissionViewInvoices,
		types.PermissionViewEvents,
	},
}

// DefaultGrants returns a copy of the shipped matrix, used to seed the
// stored rows when a firm is created.
func DefaultGrants() map[types.PermissionTier][]types.Permission {
	out := make(map[types.PermissionTier][]types.Permission, len(tierGrants))
	for tier, grants := range tierGrants {
		cp := make([]types.Permission, len(grants))
		copy(cp, grants)
		out[tier] = cp
	}
	return out
}

// NewRBACService builds the gate over the stored per firm matrix. A nil
// repository pins every firm to the shipped defaults.
func NewRBACService(repo permission.Repository, cacheClient cache.Cache) *RBACService {
	defaults := make(map[types.PermissionTier]map[types.Permission]bool, len(tierGrants))
	for tier, grants := range tierGrants {
		set := make(map[types.Permission]bool, len(grants))
		for _, p := range grants {
			set[p] = true
		}
		defaults[tier] = set
	}
	return &RBACService{defaults: defaults, repo: repo, cache: cacheClient}
}

// matrixFor resolves the matrix governing the context tenant. Firms
// with no stored rows, and calls without tenant context, run on the
// shipped defaults.
func (s *RBACService) matrixFor(ctx context.Context) map[types.PermissionTier]map[types.Permission]bool {
	tenantID := types.GetTenantID(ctx)
	if s.repo == nil || tenantID == "" {
		return s.defaults
	}

	cacheKey := cache.GenerateKey(cache.PrefixPermission, "matrix", tenantID)
	if s.cache != nil {
		if cached, found := s.cache.Get(ctx, cacheKey); found {
			if matrix, ok := cached.(map[types.PermissionTier]map[types.Permission]bool); ok {
				return matrix
			}
		}
	}

	rules, err := s.repo.ListByTenant(ctx)
	if err != nil || len(rules) == 0 {
		return s.defaults
	}

	matrix := make(map[types.PermissionTier]map[types.Permission]bool)
	for _, r := range rules {
		set, ok := matrix[r.Tier]
		if !ok {
			set = make(map[types.Permission]bool)
			matrix[r.Tier] = set
		}
		set[r.Permission] = true
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, matrix, matrixCacheExpiry)
	}
	return matrix
}

// InvalidateTenant drops the cached matrix of the context tenant so an
// edit takes effect immediately.
func (s *RBACService) InvalidateTenant(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, cache.GenerateKey(cache.PrefixPermission, "matrix", types.GetTenantID(ctx)))
}

// HasPermission checks whether the tier grants the permission in the
// caller's firm. Admin holds every permission; a tier without a matrix
// row holds none.
func (s *RBACService) HasPermission(ctx context.Context, tier types.PermissionTier, perm types.Permission) bool {
	if tier == types.PermissionTierAdmin {
		return true
	}
	set, ok := s.matrixFor(ctx)[tier]
	if !ok {
		return false
	}
	return set[perm]
}

// CheckPermission is the error returning form of HasPermission used by
// services. The denial never reveals whether the target row exists.
func (s *RBACService) CheckPermission(ctx context.Context, tier types.PermissionTier, perm types.Permission) error {
	if s.HasPermission(ctx, tier, perm) {
		return nil
	}
	return ierr.NewError("permission denied").
		WithHint("You do not have permission to perform this action").
		WithReportableDetails(map[string]any{
			"permission": perm,
			"tier":       tier,
		}).
		Mark(ierr.ErrPermissionDenied)
}

// ValidateTier checks if the tier exists in the shipped definitions.
// The tier set is fixed; firms customize grants, not tiers.
func (s *RBACService) ValidateTier(tier types.PermissionTier) bool {
	_, exists := s.defaults[tier]
	return exists
}

// PermissionsForTier returns the full grant list for a tier in the
// caller's firm, used by the session endpoint so clients can shape
// their UI.
func (s *RBACService) PermissionsForTier(ctx context.Context, tier types.PermissionTier) []types.Permission {
	matrix := s.matrixFor(ctx)

	if tier == types.PermissionTierAdmin {
		all := make([]types.Permission, 0)
		seen := make(map[types.Permission]bool)
		for _, set := range matrix {
			for p := range set {
				if !seen[p] {
					seen[p] = true
					all = append(all, p)
				}
			}
		}
		// standalone grants not held by any other tier
		for _, p := range []types.Permission{types.PermissionManageSettings} {
			if !seen[p] {
				seen[p] = true
				all = append(all, p)
			}
		}
		return all
	}

	set, ok := matrix[tier]
	if !ok {
		return nil
	}
	out := make([]types.Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}
