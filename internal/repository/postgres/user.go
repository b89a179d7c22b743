package postgres

import (
	"context"
	"fmt"

	domainUser "github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type userRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewUserRepository(db postgres.IClient, logger *logger.Logger) domainUser.Repository {
	return &userRepository{db: db, logger: logger}
}

var userSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"full_name":  true,
}

func (r *userRepository) Create(ctx context.Context, u *domainUser.User) error {
	query := `
	INSERT INTO users (id, auth_id, phone, email, full_name, professional_role, permission_tier, disabled,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		u.ID,
		u.AuthID,
		u.Phone,
		u.Email,
		u.FullName,
		u.ProfessionalRole,
		u.PermissionTier,
		u.Disabled,
		u.TenantID,
		u.Status,
		u.CreatedAt,
		u.UpdatedAt,
		u.CreatedBy,
		u.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A profile with this phone already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domainUser.User, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM users WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var u domainUser.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

// GetByAuthID resolves a profile from the identity provider subject.
// Session resolution runs before any tenant context exists, so this
// lookup is intentionally global.
func (r *userRepository) GetByAuthID(ctx context.Context, authID string) (*domainUser.User, error) {
	query := `SELECT * FROM users WHERE auth_id = $1 AND status != 'deleted'`

	var u domainUser.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, authID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("profile not found").
				WithHint("No profile exists for this account").
				Mark(ierr.ErrProfileNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch profile").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domainUser.User, error) {
	query := `SELECT * FROM users WHERE phone = $1 AND status != 'deleted'`

	var u domainUser.User
	err := r.db.Querier(ctx).GetContext(ctx, &u, query, phone)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domainUser.User) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE users
	SET email = $3, full_name = $4, professional_role = $5, permission_tier = $6, disabled = $7,
		updated_at = now(), updated_by = $8
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		u.ID,
		tenantID,
		u.Email,
		u.FullName,
		u.ProfessionalRole,
		u.PermissionTier,
		u.Disabled,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *userRepository) ListByFilter(ctx context.Context, filter *types.UserFilter) ([]*domainUser.User, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, userSortColumns)
	query += paginationClause(filter)

	users := make([]*domainUser.User, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &users, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter *types.UserFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// UpsertByPhone is the onboarding insert. The phone column carries a
// unique constraint; ON CONFLICT DO NOTHING followed by a read makes
// concurrent first logins converge on a single row.
func (r *userRepository) UpsertByPhone(ctx context.Context, u *domainUser.User) (*domainUser.User, error) {
	query := `
	INSERT INTO users (id, auth_id, phone, email, full_name, professional_role, permission_tier, disabled,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (phone) DO NOTHING
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		u.ID,
		u.AuthID,
		u.Phone,
		u.Email,
		u.FullName,
		u.ProfessionalRole,
		u.PermissionTier,
		u.Disabled,
		u.TenantID,
		u.Status,
		u.CreatedAt,
		u.UpdatedAt,
		u.CreatedBy,
		u.UpdatedBy,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create profile").
			Mark(ierr.ErrDatabase)
	}

	return r.GetByPhone(ctx, u.Phone)
}

func (r *userRepository) buildListQuery(ctx context.Context, filter *types.UserFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM users WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.PermissionTier != "" {
		args = append(args, filter.PermissionTier)
		query += fmt.Sprintf(" AND permission_tier = $%d", len(args))
	}
	if filter.ProfessionalRole != "" {
		args = append(args, filter.ProfessionalRole)
		query += fmt.Sprintf(" AND professional_role = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, searchPattern(filter.Search))
		query += fmt.Sprintf(` AND full_name ILIKE $%d ESCAPE '\'`, len(args))
	}

	return query, args
}
