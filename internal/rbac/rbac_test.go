package rbac

import (
	"context"
	"testing"

	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/domain/permission"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPermissionRepo keeps rules in a slice, enough to exercise the
// matrix resolution without a database
type stubPermissionRepo struct {
	rules []*permission.Rule
	err   error
}

func (r *stubPermissionRepo) CreateBulk(ctx context.Context, rules []*permission.Rule) error {
	r.rules = append(r.rules, rules...)
	return nil
}

func (r *stubPermissionRepo) ListByTenant(ctx context.Context) ([]*permission.Rule, error) {
	if r.err != nil {
		return nil, r.err
	}
	tenantID := types.GetTenantID(ctx)
	out := make([]*permission.Rule, 0)
	for _, rule := range r.rules {
		if rule.TenantID == tenantID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *stubPermissionRepo) ReplaceTier(ctx context.Context, tier types.PermissionTier, permissions []types.Permission) error {
	tenantID := types.GetTenantID(ctx)
	kept := r.rules[:0]
	for _, rule := range r.rules {
		if rule.TenantID != tenantID || rule.Tier != tier {
			kept = append(kept, rule)
		}
	}
	r.rules = kept
	for _, p := range permissions {
		r.rules = append(r.rules, permission.NewRule(ctx, tier, p))
	}
	return nil
}

func seedFirm(repo *stubPermissionRepo, tenantID string, grants map[types.PermissionTier][]types.Permission) {
	ctx := types.SetTenantID(context.Background(), tenantID)
	for tier, perms := range grants {
		for _, p := range perms {
			repo.rules = append(repo.rules, permission.NewRule(ctx, tier, p))
		}
	}
}

func TestAdminHoldsEveryPermission(t *testing.T) {
	svc := NewRBACService(nil, nil)
	ctx := context.Background()

	perms := []types.Permission{
		types.PermissionViewMatters,
		types.PermissionDeleteInvoices,
		types.PermissionManageUsers,
		types.PermissionManageSettings,
		types.PermissionUploadDocuments,
	}
	for _, p := range perms {
		assert.True(t, svc.HasPermission(ctx, types.PermissionTierAdmin, p), "admin should hold %s", p)
	}
}

func TestTierGrants(t *testing.T) {
	svc := NewRBACService(nil, nil)
	ctx := context.Background()

	testCases := []struct {
		name       string
		tier       types.PermissionTier
		permission types.Permission
		want       bool
	}{
		{"partner_deletes_matters", types.PermissionTierPartner, types.PermissionDeleteMatters, true},
		{"partner_manages_users", types.PermissionTierPartner, types.PermissionManageUsers, true},
		{"partner_no_settings", types.PermissionTierPartner, types.PermissionManageSettings, false},
		{"associate_creates_matters", types.PermissionTierAssociate, types.PermissionCreateMatters, true},
		{"associate_no_delete", types.PermissionTierAssociate, types.PermissionDeleteMatters, false},
		{"associate_no_user_management", types.PermissionTierAssociate, types.PermissionManageUsers, false},
		{"front_desk_creates_clients", types.PermissionTierFrontDesk, types.PermissionCreateClients, true},
		{"front_desk_records_payments", types.PermissionTierFrontDesk, types.PermissionRecordPayments, true},
		{"front_desk_no_client_delete", types.PermissionTierFrontDesk, types.PermissionDeleteClients, false},
		{"front_desk_no_documents", types.PermissionTierFrontDesk, types.PermissionViewDocuments, false},
		{"read_only_views_invoices", types.PermissionTierReadOnly, types.PermissionViewInvoices, true},
		{"read_only_no_writes", types.PermissionTierReadOnly, types.PermissionCreateClients, false},
		{"client_portal_views_matters", types.PermissionTierClientPortal, types.PermissionViewMatters, true},
		{"client_portal_no_clients", types.PermissionTierClientPortal, types.PermissionViewClients, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.HasPermission(ctx, tc.tier, tc.permission))
		})
	}
}

func TestUnknownTierFailsClosed(t *testing.T) {
	svc := NewRBACService(nil, nil)
	ctx := context.Background()

	assert.False(t, svc.HasPermission(ctx, types.PermissionTier("intern"), types.PermissionViewMatters))
	assert.False(t, svc.HasPermission(ctx, "", types.PermissionViewMatters))
}

func TestCheckPermissionError(t *testing.T) {
	svc := NewRBACService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.CheckPermission(ctx, types.PermissionTierAdmin, types.PermissionManageUsers))

	err := svc.CheckPermission(ctx, types.PermissionTierReadOnly, types.PermissionManageUsers)
	require.Error(t, err)
	assert.True(t, ierr.IsPermissionDenied(err))
}

func TestValidateTier(t *testing.T) {
	svc := NewRBACService(nil, nil)

	assert.True(t, svc.ValidateTier(types.PermissionTierAdmin))
	assert.True(t, svc.ValidateTier(types.PermissionTierClientPortal))
	assert.False(t, svc.ValidateTier(types.PermissionTier("intern")))
}

func TestPermissionsForTier(t *testing.T) {
	svc := NewRBACService(nil, nil)
	ctx := context.Background()

	adminPerms := svc.PermissionsForTier(ctx, types.PermissionTierAdmin)
	assert.Contains(t, adminPerms, types.PermissionManageSettings)
	assert.Contains(t, adminPerms, types.PermissionDeleteMatters)

	readOnly := svc.PermissionsForTier(ctx, types.PermissionTierReadOnly)
	assert.Len(t, readOnly, 6)
	assert.NotContains(t, readOnly, types.PermissionCreateClients)

	assert.Nil(t, svc.PermissionsForTier(ctx, types.PermissionTier("intern")))
}

func TestFirmMatrixOverridesDefaults(t *testing.T) {
	repo := &stubPermissionRepo{}
	seedFirm(repo, "firm_a", map[types.PermissionTier][]types.Permission{
		types.PermissionTierReadOnly: {
			types.PermissionViewMatters,
			types.PermissionCreateClients,
		},
	})
	svc := NewRBACService(repo, cache.NewInMemoryCache())

	firmA := types.SetTenantID(context.Background(), "firm_a")
	firmB := types.SetTenantID(context.Background(), "firm_b")

	// Firm A granted read_only an extra permission
	assert.True(t, svc.HasPermission(firmA, types.PermissionTierReadOnly, types.PermissionCreateClients))
	// And its stored matrix replaces the defaults wholesale
	assert.False(t, svc.HasPermission(firmA, types.PermissionTierReadOnly, types.PermissionViewInvoices))
	assert.False(t, svc.HasPermission(firmA, types.PermissionTierPartner, types.PermissionDeleteMatters))

	// Firms without stored rows keep running on the defaults
	assert.False(t, svc.HasPermission(firmB, types.PermissionTierReadOnly, types.PermissionCreateClients))
	assert.True(t, svc.HasPermission(firmB, types.PermissionTierPartner, types.PermissionDeleteMatters))
}

func TestAdminOverrideIgnoresStoredMatrix(t *testing.T) {
	repo := &stubPermissionRepo{}
	seedFirm(repo, "firm_a", map[types.PermissionTier][]types.Permission{
		types.PermissionTierReadOnly: {types.PermissionViewMatters},
	})
	svc := NewRBACService(repo, cache.NewInMemoryCache())

	firmA := types.SetTenantID(context.Background(), "firm_a")
	assert.True(t, svc.HasPermission(firmA, types.PermissionTierAdmin, types.PermissionManageSettings))
}

func TestInvalidateTenantDropsCachedMatrix(t *testing.T) {
	repo := &stubPermissionRepo{}
	seedFirm(repo, "firm_a", map[types.PermissionTier][]types.Permission{
		types.PermissionTierReadOnly: {types.PermissionViewMatters},
	})
	svc := NewRBACService(repo, cache.NewInMemoryCache())
	firmA := types.SetTenantID(context.Background(), "firm_a")

	// Warm the cache, then change the stored rules behind it
	assert.False(t, svc.HasPermission(firmA, types.PermissionTierReadOnly, types.PermissionViewInvoices))
	require.NoError(t, repo.ReplaceTier(firmA, types.PermissionTierReadOnly, []types.Permission{
		types.PermissionViewMatters,
		types.PermissionViewInvoices,
	}))

	// The cached matrix still answers until it is invalidated
	assert.False(t, svc.HasPermission(firmA, types.PermissionTierReadOnly, types.PermissionViewInvoices))

	svc.InvalidateTenant(firmA)
	assert.True(t, svc.HasPermission(firmA, types.PermissionTierReadOnly, types.PermissionViewInvoices))
}

func TestRepositoryErrorFallsBackToDefaults(t *testing.T) {
	repo := &stubPermissionRepo{err: ierr.NewError("connection refused").Mark(ierr.ErrDatabase)}
	svc := NewRBACService(repo, cache.NewInMemoryCache())
	ctx := types.SetTenantID(context.Background(), "firm_a")

	// A failing lookup must not lock the firm out entirely
	assert.True(t, svc.HasPermission(ctx, types.PermissionTierPartner, types.PermissionViewMatters))
	assert.False(t, svc.HasPermission(ctx, types.PermissionTierReadOnly, types.PermissionCreateClients))
}

func TestDefaultGrantsReturnsCopy(t *testing.T) {
	grants := DefaultGrants()
	require.NotEmpty(t, grants[types.PermissionTierPartner])

	grants[types.PermissionTierPartner][0] = types.Permission("tampered")

	fresh := DefaultGrants()
	assert.NotContains(t, fresh[types.PermissionTierPartner], types.Permission("tampered"))
}
