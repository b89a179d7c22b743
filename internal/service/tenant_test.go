package service

import (
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/tenant"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TenantServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TenantService
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceSuite))
}

func (s *TenantServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *TenantServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewTenantService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		RBAC:       s.GetRBAC(),
		Limiter:    s.GetLimiter(),
		TenantRepo: stores.TenantRepo,
	})
}

func (s *TenantServiceSuite) setupTestData() {
	firm := tenant.NewTenant("Cabinet Illiassou")
	firm.ID = types.DefaultTenantID
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), firm))
}

func (s *TenantServiceSuite) TestGetTenant() {
	resp, err := s.service.GetTenant(s.GetContext())
	s.NoError(err)
	s.Equal("Cabinet Illiassou", resp.Name)
	s.Equal(types.DefaultCurrency, resp.Currency)
	s.True(resp.TVARate.Equal(types.DefaultTVARate))
}

func (s *TenantServiceSuite) TestUpdateTenant() {
	resp, err := s.service.UpdateTenant(s.GetContext(), &dto.UpdateTenantRequest{
		Name:    lo.ToPtr("Cabinet Illiassou & Associes"),
		Phone:   lo.ToPtr("90 12 34 56"),
		City:    lo.ToPtr("Niamey"),
		TVARate: lo.ToPtr(decimal.NewFromInt(18)),
	})
	s.NoError(err)
	s.Equal("Cabinet Illiassou & Associes", resp.Name)
	s.Equal("+22790123456", resp.Phone)
	s.Equal("Niamey", resp.City)
	s.True(resp.TVARate.Equal(decimal.NewFromInt(18)))
}

func (s *TenantServiceSuite) TestUpdateTenantValidation() {
	_, err := s.service.UpdateTenant(s.GetContext(), &dto.UpdateTenantRequest{
		Name: lo.ToPtr(""),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateTenant(s.GetContext(), &dto.UpdateTenantRequest{
		TVARate: lo.ToPtr(decimal.NewFromInt(120)),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateTenant(s.GetContext(), &dto.UpdateTenantRequest{
		Phone: lo.ToPtr("+33612345678"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TenantServiceSuite) TestUpdateTenantRequiresSettingsPermission() {
	// Only admins hold the settings permission
	partnerCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierPartner)
	_, err := s.service.UpdateTenant(partnerCtx, &dto.UpdateTenantRequest{
		Name: lo.ToPtr("Autre nom"),
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
