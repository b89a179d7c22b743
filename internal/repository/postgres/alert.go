package postgres

import (
	"context"
	"fmt"

	domainAlert "github.com/jurisflow/jurisflow/internal/domain/alert"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type alertRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewAlertRepository(db postgres.IClient, logger *logger.Logger) domainAlert.Repository {
	return &alertRepository{db: db, logger: logger}
}

var alertSortColumns = map[string]bool{
	"created_at": true,
	"due_at":     true,
}

func (r *alertRepository) Create(ctx context.Context, a *domainAlert.Alert) error {
	query := `
	INSERT INTO alerts (id, user_id, alert_type, title, body, reference_id, due_at, read_at,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		a.ID,
		a.UserID,
		a.AlertType,
		a.Title,
		a.Body,
		a.ReferenceID,
		a.DueAt,
		a.ReadAt,
		a.TenantID,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
		a.CreatedBy,
		a.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create alert").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *alertRepository) GetByID(ctx context.Context, id string) (*domainAlert.Alert, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM alerts WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var a domainAlert.Alert
	err := r.db.Querier(ctx).GetContext(ctx, &a, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("alert not found").
				WithHint("Alert not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch alert").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *alertRepository) Update(ctx context.Context, a *domainAlert.Alert) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE alerts
	SET read_at = $3, updated_at = now(), updated_by = $4
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, a.ID, tenantID, a.ReadAt, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update alert").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("alert not found").
			WithHint("Alert not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *alertRepository) ListByFilter(ctx context.Context, filter *types.AlertFilter) ([]*domainAlert.Alert, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, alertSortColumns)
	query += paginationClause(filter)

	alerts := make([]*domainAlert.Alert, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list alerts").
			Mark(ierr.ErrDatabase)
	}
	return alerts, nil
}

func (r *alertRepository) Count(ctx context.Context, filter *types.AlertFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count alerts").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *alertRepository) ExistsForReference(ctx context.Context, alertType types.AlertType, referenceID string) (bool, error) {
	tenantID := types.GetTenantID(ctx)
	query := `
	SELECT EXISTS (
		SELECT 1 FROM alerts
		WHERE tenant_id = $1 AND alert_type = $2 AND reference_id = $3 AND status != 'deleted'
	)
	`

	var exists bool
	if err := r.db.Querier(ctx).GetContext(ctx, &exists, query, tenantID, alertType, referenceID); err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check alerts").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

func (r *alertRepository) buildListQuery(ctx context.Context, filter *types.AlertFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM alerts WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.AlertType != "" {
		args = append(args, filter.AlertType)
		query += fmt.Sprintf(" AND alert_type = $%d", len(args))
	}
	if filter.Unread != nil {
		if *filter.Unread {
			query += " AND read_at IS NULL"
		} else {
			query += " AND read_at IS NOT NULL"
		}
	}

	return query, args
}
