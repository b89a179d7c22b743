package postgres

import (
	"context"
	"fmt"

	domainTask "github.com/jurisflow/jurisflow/internal/domain/task"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type taskRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewTaskRepository(db postgres.IClient, logger *logger.Logger) domainTask.Repository {
	return &taskRepository{db: db, logger: logger}
}

var taskSortColumns = map[string]bool{
	"created_at": true,
	"due_date":   true,
	"priority":   true,
}

func (r *taskRepository) Create(ctx context.Context, t *domainTask.Task) error {
	query := `
	INSERT INTO tasks (id, matter_id, title, description, assigned_to, task_status, priority, due_date, completed_at,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		t.ID,
		t.MatterID,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.TaskStatus,
		t.Priority,
		t.DueDate,
		t.CompletedAt,
		t.TenantID,
		t.Status,
		t.CreatedAt,
		t.UpdatedAt,
		t.CreatedBy,
		t.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create task").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domainTask.Task, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM tasks WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var t domainTask.Task
	err := r.db.Querier(ctx).GetContext(ctx, &t, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("task not found").
				WithHint("Task not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch task").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *taskRepository) Update(ctx context.Context, t *domainTask.Task) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE tasks
	SET matter_id = $3, title = $4, description = $5, assigned_to = $6, task_status = $7, priority = $8,
		due_date = $9, completed_at = $10, updated_at = now(), updated_by = $11
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		t.ID,
		tenantID,
		t.MatterID,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.TaskStatus,
		t.Priority,
		t.DueDate,
		t.CompletedAt,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update task").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("task not found").
			WithHint("Task not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE tasks SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete task").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("task not found").
			WithHint("Task not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *taskRepository) ListByFilter(ctx context.Context, filter *types.TaskFilter) ([]*domainTask.Task, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, taskSortColumns)
	query += paginationClause(filter)

	tasks := make([]*domainTask.Task, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tasks").
			Mark(ierr.ErrDatabase)
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context, filter *types.TaskFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count tasks").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *taskRepository) buildListQuery(ctx context.Context, filter *types.TaskFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM tasks WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.MatterID != "" {
		args = append(args, filter.MatterID)
		query += fmt.Sprintf(" AND matter_id = $%d", len(args))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		query += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}
	if filter.TaskStatus != "" {
		args = append(args, filter.TaskStatus)
		query += fmt.Sprintf(" AND task_status = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	return query, args
}
