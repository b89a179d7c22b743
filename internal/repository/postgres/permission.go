package postgres

import (
	"context"
	"fmt"
	"strings"

	domainPermission "github.com/jurisflow/jurisflow/internal/domain/permission"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type permissionRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewPermissionRepository(db postgres.IClient, logger *logger.Logger) domainPermission.Repository {
	return &permissionRepository{db: db, logger: logger}
}

func (r *permissionRepository) CreateBulk(ctx context.Context, rules []*domainPermission.Rule) error {
	if len(rules) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(rules))
	args := make([]interface{}, 0, len(rules)*9)
	for i, rule := range rules {
		base := i * 9
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args,
			rule.ID,
			rule.Tier,
			rule.Permission,
			rule.TenantID,
			rule.Status,
			rule.CreatedAt,
			rule.UpdatedAt,
			rule.CreatedBy,
			rule.UpdatedBy,
		)
	}

	// The unique index on (tenant_id, tier, permission) absorbs
	// concurrent seeding of the same firm
	query := `
	INSERT INTO permission_rules (id, tier, permission, tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ` + strings.Join(placeholders, ", ") + `
	ON CONFLICT (tenant_id, tier, permission) DO NOTHING
	`

	if _, err := r.db.Querier(ctx).ExecContext(ctx, query, args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save permission rules").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *permissionRepository) ListByTenant(ctx context.Context) ([]*domainPermission.Rule, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM permission_rules WHERE tenant_id = $1 AND status != 'deleted' ORDER BY tier, permission`

	rules := make([]*domainPermission.Rule, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &rules, query, tenantID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list permission rules").
			Mark(ierr.ErrDatabase)
	}
	return rules, nil
}

// ReplaceTier deletes the tier's current rows and inserts the new
// grants in one transaction, so readers never observe a half-edited
// tier.
func (r *permissionRepository) ReplaceTier(ctx context.Context, tier types.PermissionTier, permissions []types.Permission) error {
	tenantID := types.GetTenantID(ctx)

	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		del := `DELETE FROM permission_rules WHERE tenant_id = $1 AND tier = $2`
		if _, err := r.db.Querier(txCtx).ExecContext(txCtx, del, tenantID, tier); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to update permission rules").
				Mark(ierr.ErrDatabase)
		}

		rules := make([]*domainPermission.Rule, 0, len(permissions))
		for _, p := range permissions {
			rules = append(rules, domainPermission.NewRule(txCtx, tier, p))
		}
		return r.CreateBulk(txCtx, rules)
	})
}
