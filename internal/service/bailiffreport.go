package service

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/bailiffreport"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// BailiffReportService manages the firm's bailiff register. Register
// entries follow the matter permissions; a tier that can work on case
// files can work on the register.
type BailiffReportService interface {
	CreateReport(ctx context.Context, req *dto.CreateBailiffReportRequest) (*dto.BailiffReportResponse, error)
	GetReport(ctx context.Context, id string) (*dto.BailiffReportResponse, error)
	ListReports(ctx context.Context, filter *types.BailiffReportFilter) (*dto.ListBailiffReportsResponse, error)
	UpdateReport(ctx context.Context, id string, req *dto.UpdateBailiffReportRequest) (*dto.BailiffReportResponse, error)
	DeleteReport(ctx context.Context, id string) error
}

type bailiffReportService struct {
	ServiceParams
}

func NewBailiffReportService(params ServiceParams) BailiffReportService {
	return &bailiffReportService{ServiceParams: params}
}

func (s *bailiffReportService) CreateReport(ctx context.Context, req *dto.CreateBailiffReportRequest) (*dto.BailiffReportResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateMatters); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MatterID != "" {
		if _, err := s.MatterRepo.GetByID(ctx, req.MatterID); err != nil {
			return nil, err
		}
	}
	if req.ClientID != "" {
		if _, err := s.ClientRepo.GetByID(ctx, req.ClientID); err != nil {
			return nil, err
		}
	}

	r := req.ToReport(ctx)
	if req.Served {
		r.Served = true
		r.ServedAt = lo.ToPtr(time.Now().UTC())
	}

	if err := s.BailiffReportRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	return dto.NewBailiffReportResponse(r), nil
}

func (s *bailiffReportService) GetReport(ctx context.Context, id string) (*dto.BailiffReportResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewMatters); err != nil {
		return nil, err
	}

	r, err := s.BailiffReportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewBailiffReportResponse(r), nil
}

func (s *bailiffReportService) ListReports(ctx context.Context, filter *types.BailiffReportFilter) (*dto.ListBailiffReportsResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewMatters); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewBailiffReportFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.BailiffReportRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.BailiffReportRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListBailiffReportsResponse{
		Items: lo.Map(reports, func(r *bailiffreport.Report, _ int) *dto.BailiffReportResponse {
			return dto.NewBailiffReportResponse(r)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *bailiffReportService) UpdateReport(ctx context.Context, id string, req *dto.UpdateBailiffReportRequest) (*dto.BailiffReportResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditMatters); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r, err := s.BailiffReportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ReportType != nil {
		r.ReportType = *req.ReportType
	}
	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.ReportNumber != nil {
		r.ReportNumber = *req.ReportNumber
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if req.Location != nil {
		r.Location = *req.Location
	}
	if req.GPSLat != nil {
		r.GPSLat = req.GPSLat
	}
	if req.GPSLng != nil {
		r.GPSLng = req.GPSLng
	}
	if req.ReportDate != nil {
		r.ReportDate = *req.ReportDate
	}
	if req.ServedTo != nil {
		r.ServedTo = *req.ServedTo
	}
	if req.Fees != nil {
		r.Fees = *req.Fees
	}
	if req.Served != nil {
		switch {
		case *req.Served && !r.Served:
			r.Served = true
			r.ServedAt = lo.ToPtr(time.Now().UTC())
		case !*req.Served:
			// Withdrawing service clears the timestamp
			r.Served = false
			r.ServedAt = nil
		}
	}

	if err := s.BailiffReportRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	return dto.NewBailiffReportResponse(r), nil
}

func (s *bailiffReportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteMatters); err != nil {
		return err
	}

	if _, err := s.BailiffReportRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.BailiffReportRepo.Delete(ctx, id)
}
