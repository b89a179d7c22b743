package postgres

import (
	"context"
	"fmt"

	domainEvent "github.com/jurisflow/jurisflow/internal/domain/event"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type eventRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewEventRepository(db postgres.IClient, logger *logger.Logger) domainEvent.Repository {
	return &eventRepository{db: db, logger: logger}
}

var eventSortColumns = map[string]bool{
	"created_at": true,
	"starts_at":  true,
}

func (r *eventRepository) Create(ctx context.Context, e *domainEvent.Event) error {
	query := `
	INSERT INTO events (id, matter_id, event_type, title, description, location, starts_at, ends_at,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		e.ID,
		e.MatterID,
		e.EventType,
		e.Title,
		e.Description,
		e.Location,
		e.StartsAt,
		e.EndsAt,
		e.TenantID,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
		e.CreatedBy,
		e.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create event").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domainEvent.Event, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM events WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var e domainEvent.Event
	err := r.db.Querier(ctx).GetContext(ctx, &e, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("event not found").
				WithHint("Event not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch event").
			Mark(ierr.ErrDatabase)
	}
	return &e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domainEvent.Event) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE events
	SET event_type = $3, title = $4, description = $5, location = $6, starts_at = $7, ends_at = $8,
		updated_at = now(), updated_by = $9
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		e.ID,
		tenantID,
		e.EventType,
		e.Title,
		e.Description,
		e.Location,
		e.StartsAt,
		e.EndsAt,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update event").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("event not found").
			WithHint("Event not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE events SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete event").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("event not found").
			WithHint("Event not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *eventRepository) ListByFilter(ctx context.Context, filter *types.EventFilter) ([]*domainEvent.Event, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, eventSortColumns)
	query += paginationClause(filter)

	events := make([]*domainEvent.Event, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &events, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list events").
			Mark(ierr.ErrDatabase)
	}
	return events, nil
}

func (r *eventRepository) Count(ctx context.Context, filter *types.EventFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count events").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *eventRepository) buildListQuery(ctx context.Context, filter *types.EventFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM events WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.MatterID != "" {
		args = append(args, filter.MatterID)
		query += fmt.Sprintf(" AND matter_id = $%d", len(args))
	}
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		query += fmt.Sprintf(" AND event_type = $%d", len(args))
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			args = append(args, *filter.StartTime)
			query += fmt.Sprintf(" AND starts_at >= $%d", len(args))
		}
		if filter.EndTime != nil {
			args = append(args, *filter.EndTime)
			query += fmt.Sprintf(" AND starts_at <= $%d", len(args))
		}
	}

	return query, args
}
