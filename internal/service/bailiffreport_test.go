package service

import (
	"testing"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/matter"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BailiffReportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    BailiffReportService
	testMatter *matter.Matter
}

func TestBailiffReportService(t *testing.T) {
	suite.Run(t, new(BailiffReportServiceSuite))
}

func (s *BailiffReportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *BailiffReportServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewBailiffReportService(ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		DB:                s.GetDB(),
		RBAC:              s.GetRBAC(),
		Limiter:           s.GetLimiter(),
		MatterRepo:        stores.MatterRepo,
		ClientRepo:        stores.ClientRepo,
		BailiffReportRepo: stores.BailiffReportRepo,
	})
}

func (s *BailiffReportServiceSuite) setupTestData() {
	s.testMatter = matter.NewMatter(s.GetContext(), "Dossier Expulsion", "client_1")
	s.NoError(s.GetStores().MatterRepo.Create(s.GetContext(), s.testMatter))
}

func (s *BailiffReportServiceSuite) TestCreateReportDefaults() {
	resp, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeObservation,
		Title:      "Constat d'etat des lieux",
	})
	s.NoError(err)
	s.Equal(types.BailiffReportTypeObservation, resp.ReportType)
	// The register stamps today when no report date is given
	s.WithinDuration(time.Now().UTC(), resp.ReportDate, time.Minute)
	s.False(resp.Served)
	s.Nil(resp.ServedAt)
	s.True(resp.Fees.IsZero())
}

func (s *BailiffReportServiceSuite) TestCreateServedReportStampsTimestamp() {
	resp, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeService,
		Title:      "Signification de jugement",
		MatterID:   s.testMatter.ID,
		Served:     true,
		ServedTo:   "Amadou Diallo",
	})
	s.NoError(err)
	s.True(resp.Served)
	s.NotNil(resp.ServedAt)
	s.Equal("Amadou Diallo", resp.ServedTo)
}

func (s *BailiffReportServiceSuite) TestCreateReportValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateBailiffReportRequest
	}{
		{
			name: "title_too_short",
			req:  &dto.CreateBailiffReportRequest{ReportType: types.BailiffReportTypeSeizure, Title: "ab"},
		},
		{
			name: "unknown_type",
			req:  &dto.CreateBailiffReportRequest{ReportType: types.BailiffReportType("audit"), Title: "Proces-verbal"},
		},
		{
			name: "latitude_out_of_range",
			req: &dto.CreateBailiffReportRequest{
				ReportType: types.BailiffReportTypeObservation,
				Title:      "Constat",
				GPSLat:     lo.ToPtr(decimal.NewFromInt(91)),
				GPSLng:     lo.ToPtr(decimal.NewFromInt(2)),
			},
		},
		{
			name: "longitude_out_of_range",
			req: &dto.CreateBailiffReportRequest{
				ReportType: types.BailiffReportTypeObservation,
				Title:      "Constat",
				GPSLat:     lo.ToPtr(decimal.NewFromInt(13)),
				GPSLng:     lo.ToPtr(decimal.NewFromInt(-181)),
			},
		},
		{
			name: "negative_fees",
			req: &dto.CreateBailiffReportRequest{
				ReportType: types.BailiffReportTypeService,
				Title:      "Signification",
				Fees:       lo.ToPtr(decimal.NewFromInt(-5000)),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateReport(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *BailiffReportServiceSuite) TestCreateReportUnknownMatter() {
	_, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeEviction,
		Title:      "Proces-verbal d'expulsion",
		MatterID:   "matter_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BailiffReportServiceSuite) TestUpdateReportServiceLifecycle() {
	created, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeFormalNotice,
		Title:      "Mise en demeure",
	})
	s.NoError(err)

	served, err := s.service.UpdateReport(s.GetContext(), created.ID, &dto.UpdateBailiffReportRequest{
		Served:   lo.ToPtr(true),
		ServedTo: lo.ToPtr("Societe Sahel SARL"),
	})
	s.NoError(err)
	s.True(served.Served)
	s.NotNil(served.ServedAt)

	// Withdrawing service clears the timestamp
	withdrawn, err := s.service.UpdateReport(s.GetContext(), created.ID, &dto.UpdateBailiffReportRequest{
		Served: lo.ToPtr(false),
	})
	s.NoError(err)
	s.False(withdrawn.Served)
	s.Nil(withdrawn.ServedAt)
}

func (s *BailiffReportServiceSuite) TestListReportsFilters() {
	for _, reportType := range []types.BailiffReportType{
		types.BailiffReportTypeObservation,
		types.BailiffReportTypeObservation,
		types.BailiffReportTypeSeizure,
	} {
		_, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
			ReportType: reportType,
			Title:      "Proces-verbal",
			MatterID:   s.testMatter.ID,
		})
		s.NoError(err)
	}

	filter := types.NewBailiffReportFilter()
	filter.ReportType = types.BailiffReportTypeObservation
	resp, err := s.service.ListReports(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)

	filter = types.NewBailiffReportFilter()
	filter.MatterID = s.testMatter.ID
	resp, err = s.service.ListReports(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 3)
}

func (s *BailiffReportServiceSuite) TestListReportsScopedToTenant() {
	_, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeInventory,
		Title:      "Inventaire de succession",
	})
	s.NoError(err)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	resp, err := s.service.ListReports(otherCtx, types.NewBailiffReportFilter())
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *BailiffReportServiceSuite) TestReportPermissions() {
	created, err := s.service.CreateReport(s.GetContext(), &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeOther,
		Title:      "Proces-verbal divers",
	})
	s.NoError(err)

	readOnlyCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierReadOnly)
	_, err = s.service.CreateReport(readOnlyCtx, &dto.CreateBailiffReportRequest{
		ReportType: types.BailiffReportTypeOther,
		Title:      "Proces-verbal refuse",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// The read-only tier can still consult the register
	_, err = s.service.GetReport(readOnlyCtx, created.ID)
	s.NoError(err)

	err = s.service.DeleteReport(readOnlyCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	s.NoError(s.service.DeleteReport(s.GetContext(), created.ID))
	_, err = s.service.GetReport(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
