package postgres

import (
	"context"
	"fmt"

	domainAct "github.com/jurisflow/jurisflow/internal/domain/notaryact"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type notaryActRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewNotaryActRepository(db postgres.IClient, logger *logger.Logger) domainAct.Repository {
	return &notaryActRepository{db: db, logger: logger}
}

var notaryActSortColumns = map[string]bool{
	"created_at": true,
	"act_date":   true,
	"title":      true,
}

func (r *notaryActRepository) Create(ctx context.Context, a *domainAct.Act) error {
	query := `
	INSERT INTO notary_acts (id, matter_id, client_id, act_type, act_number, title, description,
		act_date, signed, signed_at, notary_fees, tax_amount,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		a.ID,
		a.MatterID,
		a.ClientID,
		a.ActType,
		a.ActNumber,
		a.Title,
		a.Description,
		a.ActDate,
		a.Signed,
		a.SignedAt,
		a.NotaryFees,
		a.TaxAmount,
		a.TenantID,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
		a.CreatedBy,
		a.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create act").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *notaryActRepository) GetByID(ctx context.Context, id string) (*domainAct.Act, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM notary_acts WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var a domainAct.Act
	err := r.db.Querier(ctx).GetContext(ctx, &a, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("act not found").
				WithHint("Act not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch act").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *notaryActRepository) Update(ctx context.Context, a *domainAct.Act) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE notary_acts
	SET act_type = $3, act_number = $4, title = $5, description = $6, act_date = $7,
		signed = $8, signed_at = $9, notary_fees = $10, tax_amount = $11,
		updated_at = now(), updated_by = $12
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		a.ID,
		tenantID,
		a.ActType,
		a.ActNumber,
		a.Title,
		a.Description,
		a.ActDate,
		a.Signed,
		a.SignedAt,
		a.NotaryFees,
		a.TaxAmount,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update act").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("act not found").
			WithHint("Act not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *notaryActRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE notary_acts SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete act").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("act not found").
			WithHint("Act not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *notaryActRepository) ListByFilter(ctx context.Context, filter *types.NotaryActFilter) ([]*domainAct.Act, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, notaryActSortColumns)
	query += paginationClause(filter)

	acts := make([]*domainAct.Act, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &acts, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list acts").
			Mark(ierr.ErrDatabase)
	}
	return acts, nil
}

func (r *notaryActRepository) Count(ctx context.Context, filter *types.NotaryActFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count acts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *notaryActRepository) buildListQuery(ctx context.Context, filter *types.NotaryActFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM notary_acts WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.MatterID != "" {
		args = append(args, filter.MatterID)
		query += fmt.Sprintf(" AND matter_id = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.ActType != "" {
		args = append(args, filter.ActType)
		query += fmt.Sprintf(" AND act_type = $%d", len(args))
	}
	if filter.Signed != nil {
		args = append(args, *filter.Signed)
		query += fmt.Sprintf(" AND signed = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, searchPattern(filter.Search))
		query += fmt.Sprintf(` AND (title ILIKE $%d ESCAPE '\' OR act_number ILIKE $%d ESCAPE '\')`, len(args), len(args))
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			args = append(args, *filter.StartTime)
			query += fmt.Sprintf(" AND act_date >= $%d", len(args))
		}
		if filter.EndTime != nil {
			args = append(args, *filter.EndTime)
			query += fmt.Sprintf(" AND act_date <= $%d", len(args))
		}
	}

	return query, args
}
