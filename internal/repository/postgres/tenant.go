package postgres

import (
	"context"

	domainTenant "github.com/jurisflow/jurisflow/internal/domain/tenant"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
)

type tenantRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewTenantRepository(db postgres.IClient, logger *logger.Logger) domainTenant.Repository {
	return &tenantRepository{db: db, logger: logger}
}

func (r *tenantRepository) Create(ctx context.Context, t *domainTenant.Tenant) error {
	query := `
	INSERT INTO tenants (id, name, phone, email, address, city, tva_rate, currency, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		t.ID,
		t.Name,
		t.Phone,
		t.Email,
		t.Address,
		t.City,
		t.TVARate,
		t.Currency,
		t.Status,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A firm with this identifier already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create firm").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domainTenant.Tenant, error) {
	query := `SELECT * FROM tenants WHERE id = $1 AND status != 'deleted'`

	var t domainTenant.Tenant
	err := r.db.Querier(ctx).GetContext(ctx, &t, query, id)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("tenant not found").
				WithHint("Firm not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch firm").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *tenantRepository) Update(ctx context.Context, t *domainTenant.Tenant) error {
	query := `
	UPDATE tenants
	SET name = $2, phone = $3, email = $4, address = $5, city = $6, tva_rate = $7, currency = $8, updated_at = now()
	WHERE id = $1 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		t.ID,
		t.Name,
		t.Phone,
		t.Email,
		t.Address,
		t.City,
		t.TVARate,
		t.Currency,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update firm").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("tenant not found").
			WithHint("Firm not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
