package postgres

import (
	"context"
	"fmt"

	domainDocument "github.com/jurisflow/jurisflow/internal/domain/document"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type documentRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewDocumentRepository(db postgres.IClient, logger *logger.Logger) domainDocument.Repository {
	return &documentRepository{db: db, logger: logger}
}

var documentSortColumns = map[string]bool{
	"created_at": true,
	"file_name":  true,
	"size_bytes": true,
}

func (r *documentRepository) Create(ctx context.Context, d *domainDocument.Document) error {
	query := `
	INSERT INTO documents (id, matter_id, client_id, file_name, storage_key, mime_type, size_bytes,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		d.ID,
		d.MatterID,
		d.ClientID,
		d.FileName,
		d.StorageKey,
		d.MimeType,
		d.SizeBytes,
		d.TenantID,
		d.Status,
		d.CreatedAt,
		d.UpdatedAt,
		d.CreatedBy,
		d.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create document").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domainDocument.Document, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM documents WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var d domainDocument.Document
	err := r.db.Querier(ctx).GetContext(ctx, &d, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("document not found").
				WithHint("Document not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch document").
			Mark(ierr.ErrDatabase)
	}
	return &d, nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE documents SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete document").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("document not found").
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *documentRepository) ListByFilter(ctx context.Context, filter *types.DocumentFilter) ([]*domainDocument.Document, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, documentSortColumns)
	query += paginationClause(filter)

	documents := make([]*domainDocument.Document, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &documents, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list documents").
			Mark(ierr.ErrDatabase)
	}
	return documents, nil
}

func (r *documentRepository) Count(ctx context.Context, filter *types.DocumentFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count documents").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *documentRepository) buildListQuery(ctx context.Context, filter *types.DocumentFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM documents WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.MatterID != "" {
		args = append(args, filter.MatterID)
		query += fmt.Sprintf(" AND matter_id = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, searchPattern(filter.Search))
		query += fmt.Sprintf(` AND file_name ILIKE $%d ESCAPE '\'`, len(args))
	}

	return query, args
}
