package testutil

import (
	"context"
	"strings"

	"github.com/jurisflow/jurisflow/internal/domain/bailiffreport"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryBailiffReportStore implements bailiffreport.Repository
type InMemoryBailiffReportStore struct {
	*InMemoryStore[*bailiffreport.Report]
}

// NewInMemoryBailiffReportStore creates a new in-memory bailiff report store
func NewInMemoryBailiffReportStore() *InMemoryBailiffReportStore {
	return &InMemoryBailiffReportStore{
		InMemoryStore: NewInMemoryStore[*bailiffreport.Report](),
	}
}

func copyBailiffReport(r *bailiffreport.Report) *bailiffreport.Report {
	if r == nil {
		return nil
	}
	cp := *r
	if r.ServedAt != nil {
		servedAt := *r.ServedAt
		cp.ServedAt = &servedAt
	}
	if r.GPSLat != nil {
		lat := *r.GPSLat
		cp.GPSLat = &lat
	}
	if r.GPSLng != nil {
		lng := *r.GPSLng
		cp.GPSLng = &lng
	}
	return &cp
}

func (s *InMemoryBailiffReportStore) Create(ctx context.Context, r *bailiffreport.Report) error {
	return s.InMemoryStore.Create(ctx, r.ID, copyBailiffReport(r))
}

func (s *InMemoryBailiffReportStore) GetByID(ctx context.Context, id string) (*bailiffreport.Report, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyBailiffReport(r), nil
}

func (s *InMemoryBailiffReportStore) Update(ctx context.Context, r *bailiffreport.Report) error {
	return s.InMemoryStore.Update(ctx, r.ID, copyBailiffReport(r))
}

func (s *InMemoryBailiffReportStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryBailiffReportStore) ListByFilter(ctx context.Context, filter *types.BailiffReportFilter) ([]*bailiffreport.Report, error) {
	items, err := s.InMemoryStore.List(ctx, filter, bailiffReportFilterFn, bailiffReportSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(r *bailiffreport.Report, _ int) *bailiffreport.Report {
		return copyBailiffReport(r)
	}), nil
}

func (s *InMemoryBailiffReportStore) Count(ctx context.Context, filter *types.BailiffReportFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, bailiffReportFilterFn)
	return int64(count), err
}

func bailiffReportFilterFn(ctx context.Context, r *bailiffreport.Report, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && r.TenantID != tenantID {
		return false
	}
	if r.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.BailiffReportFilter)
	if !ok || f == nil {
		return true
	}

	if f.MatterID != "" && r.MatterID != f.MatterID {
		return false
	}
	if f.ClientID != "" && r.ClientID != f.ClientID {
		return false
	}
	if f.ReportType != "" && r.ReportType != f.ReportType {
		return false
	}
	if f.Served != nil && r.Served != *f.Served {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.ReportNumber), needle) {
			return false
		}
	}
	// The time range applies to the report date, not the row creation
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && r.ReportDate.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && r.ReportDate.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func bailiffReportSortFn(i, j *bailiffreport.Report) bool {
	return i.ReportDate.Before(j.ReportDate)
}
