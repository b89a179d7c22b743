package postgres

import (
	"context"
	"fmt"

	domainMatter "github.com/jurisflow/jurisflow/internal/domain/matter"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type matterRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewMatterRepository(db postgres.IClient, logger *logger.Logger) domainMatter.Repository {
	return &matterRepository{db: db, logger: logger}
}

var matterSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"opened_at":  true,
	"title":      true,
}

func (r *matterRepository) Create(ctx context.Context, m *domainMatter.Matter) error {
	query := `
	INSERT INTO matters (id, reference, title, description, client_id, matter_status, assigned_to,
		jurisdiction, court_name, opposing_party, service_date, opened_at, closed_at, metadata,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		m.ID,
		m.Reference,
		m.Title,
		m.Description,
		m.ClientID,
		m.MatterStatus,
		m.AssignedTo,
		m.Jurisdiction,
		m.CourtName,
		m.OpposingParty,
		m.ServiceDate,
		m.OpenedAt,
		m.ClosedAt,
		m.Metadata,
		m.TenantID,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
		m.CreatedBy,
		m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A matter with this reference already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create matter").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *matterRepository) GetByID(ctx context.Context, id string) (*domainMatter.Matter, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM matters WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var m domainMatter.Matter
	err := r.db.Querier(ctx).GetContext(ctx, &m, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("matter not found").
				WithHint("Matter not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch matter").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *matterRepository) Update(ctx context.Context, m *domainMatter.Matter) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE matters
	SET title = $3, description = $4, client_id = $5, matter_status = $6, assigned_to = $7,
		jurisdiction = $8, court_name = $9, opposing_party = $10, service_date = $11,
		closed_at = $12, metadata = $13, updated_at = now(), updated_by = $14
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		m.ID,
		tenantID,
		m.Title,
		m.Description,
		m.ClientID,
		m.MatterStatus,
		m.AssignedTo,
		m.Jurisdiction,
		m.CourtName,
		m.OpposingParty,
		m.ServiceDate,
		m.ClosedAt,
		m.Metadata,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update matter").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("matter not found").
			WithHint("Matter not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *matterRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE matters SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete matter").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("matter not found").
			WithHint("Matter not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *matterRepository) ListByFilter(ctx context.Context, filter *types.MatterFilter) ([]*domainMatter.Matter, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, matterSortColumns)
	query += paginationClause(filter)

	matters := make([]*domainMatter.Matter, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &matters, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list matters").
			Mark(ierr.ErrDatabase)
	}
	return matters, nil
}

func (r *matterRepository) Count(ctx context.Context, filter *types.MatterFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count matters").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *matterRepository) buildListQuery(ctx context.Context, filter *types.MatterFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM matters WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.MatterStatus != "" {
		args = append(args, filter.MatterStatus)
		query += fmt.Sprintf(" AND matter_status = $%d", len(args))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		query += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, searchPattern(filter.Search))
		n := len(args)
		query += fmt.Sprintf(` AND (title ILIKE $%d ESCAPE '\' OR reference ILIKE $%d ESCAPE '\')`, n, n)
	}

	return query, args
}
