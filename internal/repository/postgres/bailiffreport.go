package postgres

import (
	"context"
	"fmt"

	domainReport "github.com/jurisflow/jurisflow/internal/domain/bailiffreport"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type bailiffReportRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewBailiffReportRepository(db postgres.IClient, logger *logger.Logger) domainReport.Repository {
	return &bailiffReportRepository{db: db, logger: logger}
}

var bailiffReportSortColumns = map[string]bool{
	"created_at":  true,
	"report_date": true,
	"title":       true,
}

func (r *bailiffReportRepository) Create(ctx context.Context, rep *domainReport.Report) error {
	query := `
	INSERT INTO bailiff_reports (id, matter_id, client_id, report_type, report_number, title, description,
		location, gps_lat, gps_lng, report_date, served, served_at, served_to, fees,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		rep.ID,
		rep.MatterID,
		rep.ClientID,
		rep.ReportType,
		rep.ReportNumber,
		rep.Title,
		rep.Description,
		rep.Location,
		rep.GPSLat,
		rep.GPSLng,
		rep.ReportDate,
		rep.Served,
		rep.ServedAt,
		rep.ServedTo,
		rep.Fees,
		rep.TenantID,
		rep.Status,
		rep.CreatedAt,
		rep.UpdatedAt,
		rep.CreatedBy,
		rep.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create report").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *bailiffReportRepository) GetByID(ctx context.Context, id string) (*domainReport.Report, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM bailiff_reports WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var rep domainReport.Report
	err := r.db.Querier(ctx).GetContext(ctx, &rep, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("report not found").
				WithHint("Report not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch report").
			Mark(ierr.ErrDatabase)
	}
	return &rep, nil
}

func (r *bailiffReportRepository) Update(ctx context.Context, rep *domainReport.Report) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE bailiff_reports
	SET report_type = $3, report_number = $4, title = $5, description = $6, location = $7,
		gps_lat = $8, gps_lng = $9, report_date = $10, served = $11, served_at = $12, served_to = $13, fees = $14,
		updated_at = now(), updated_by = $15
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		rep.ID,
		tenantID,
		rep.ReportType,
		rep.ReportNumber,
		rep.Title,
		rep.Description,
		rep.Location,
		rep.GPSLat,
		rep.GPSLng,
		rep.ReportDate,
		rep.Served,
		rep.ServedAt,
		rep.ServedTo,
		rep.Fees,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update report").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("report not found").
			WithHint("Report not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *bailiffReportRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE bailiff_reports SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete report").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("report not found").
			WithHint("Report not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *bailiffReportRepository) ListByFilter(ctx context.Context, filter *types.BailiffReportFilter) ([]*domainReport.Report, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, bailiffReportSortColumns)
	query += paginationClause(filter)

	reports := make([]*domainReport.Report, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list reports").
			Mark(ierr.ErrDatabase)
	}
	return reports, nil
}

func (r *bailiffReportRepository) Count(ctx context.Context, filter *types.BailiffReportFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count reports").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *bailiffReportRepository) buildListQuery(ctx context.Context, filter *types.BailiffReportFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM bailiff_reports WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.MatterID != "" {
		args = append(args, filter.MatterID)
		query += fmt.Sprintf(" AND matter_id = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.ReportType != "" {
		args = append(args, filter.ReportType)
		query += fmt.Sprintf(" AND report_type = $%d", len(args))
	}
	if filter.Served != nil {
		args = append(args, *filter.Served)
		query += fmt.Sprintf(" AND served = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, searchPattern(filter.Search))
		query += fmt.Sprintf(` AND (title ILIKE $%d ESCAPE '\' OR report_number ILIKE $%d ESCAPE '\')`, len(args), len(args))
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			args = append(args, *filter.StartTime)
			query += fmt.Sprintf(" AND report_date >= $%d", len(args))
		}
		if filter.EndTime != nil {
			args = append(args, *filter.EndTime)
			query += fmt.Sprintf(" AND report_date <= $%d", len(args))
		}
	}

	return query, args
}
