package postgres

import (
	"context"
	"fmt"

	domainClient "github.com/jurisflow/jurisflow/internal/domain/client"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type clientRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewClientRepository(db postgres.IClient, logger *logger.Logger) domainClient.Repository {
	return &clientRepository{db: db, logger: logger}
}

var clientSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"last_name":  true,
}

func (r *clientRepository) Create(ctx context.Context, c *domainClient.Client) error {
	query := `
	INSERT INTO clients (id, client_type, first_name, last_name, company_name, phone, email, address, city, notes, metadata,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		c.ID,
		c.ClientType,
		c.FirstName,
		c.LastName,
		c.CompanyName,
		c.Phone,
		c.Email,
		c.Address,
		c.City,
		c.Notes,
		c.Metadata,
		c.TenantID,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
		c.CreatedBy,
		c.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domainClient.Client, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM clients WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var c domainClient.Client
	err := r.db.Querier(ctx).GetContext(ctx, &c, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("client not found").
				WithHint("Client not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domainClient.Client) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE clients
	SET client_type = $3, first_name = $4, last_name = $5, company_name = $6, phone = $7, email = $8,
		address = $9, city = $10, notes = $11, metadata = $12, updated_at = now(), updated_by = $13
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		c.ID,
		tenantID,
		c.ClientType,
		c.FirstName,
		c.LastName,
		c.CompanyName,
		c.Phone,
		c.Email,
		c.Address,
		c.City,
		c.Notes,
		c.Metadata,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE clients SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete client").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *clientRepository) ListByFilter(ctx context.Context, filter *types.ClientFilter) ([]*domainClient.Client, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, clientSortColumns)
	query += paginationClause(filter)

	clients := make([]*domainClient.Client, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, filter *types.ClientFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count clients").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *clientRepository) buildListQuery(ctx context.Context, filter *types.ClientFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM clients WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.ClientType != "" {
		args = append(args, filter.ClientType)
		query += fmt.Sprintf(" AND client_type = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, searchPattern(filter.Search))
		n := len(args)
		query += fmt.Sprintf(` AND (first_name ILIKE $%d ESCAPE '\' OR last_name ILIKE $%d ESCAPE '\' OR company_name ILIKE $%d ESCAPE '\')`, n, n, n)
	}

	return query, args
}
