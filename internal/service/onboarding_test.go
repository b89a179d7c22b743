package service

import (
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/tenant"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/stretchr/testify/suite"
)

type OnboardingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service OnboardingService
	params  ServiceParams
}

func TestOnboardingService(t *testing.T) {
	suite.Run(t, new(OnboardingServiceSuite))
}

func (s *OnboardingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *OnboardingServiceSuite) setupService() {
	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		DB:             s.GetDB(),
		RBAC:           s.GetRBAC(),
		Limiter:        s.GetLimiter(),
		AuthProvider:   s.GetAuthProvider(),
		TenantRepo:     stores.TenantRepo,
		UserRepo:       stores.UserRepo,
		AuthRepo:       stores.AuthRepo,
		PermissionRepo: stores.PermissionRepo,
	}
	s.service = NewOnboardingService(s.params)
}

func (s *OnboardingServiceSuite) signUp(phone string) *dto.AuthResponse {
	resp, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Phone:            phone,
		Password:         "correct-horse-battery",
		FullName:         "Maitre Abdou",
		FirmName:         "Cabinet Abdou",
		ProfessionalRole: types.ProfessionalRoleLawyer,
	})
	s.NoError(err)
	s.NotNil(resp)
	return resp
}

func (s *OnboardingServiceSuite) TestSignUpProvisionsDedicatedFirm() {
	resp := s.signUp("+22790111111")

	s.True(resp.IsNewUser)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.UserID)
	s.NotEmpty(resp.TenantID)

	firm, err := s.GetStores().TenantRepo.GetByID(s.GetContext(), resp.TenantID)
	s.NoError(err)
	s.Equal("Cabinet Abdou", firm.Name)
	s.True(firm.TVARate.Equal(types.DefaultTVARate))

	firmCtx := types.SetTenantID(s.GetContext(), resp.TenantID)
	profile, err := s.GetStores().UserRepo.GetByID(firmCtx, resp.UserID)
	s.NoError(err)
	// The founding member administers the new firm
	s.Equal(types.PermissionTierAdmin, profile.PermissionTier)
	s.Equal(types.ProfessionalRoleLawyer, profile.ProfessionalRole)
	s.Equal("+22790111111", profile.Phone)
}

func (s *OnboardingServiceSuite) TestSignUpSeedsPermissionMatrix() {
	resp := s.signUp("+22790121212")

	firmCtx := types.SetTenantID(s.GetContext(), resp.TenantID)
	rules, err := s.GetStores().PermissionRepo.ListByTenant(firmCtx)
	s.NoError(err)
	s.NotEmpty(rules)

	held := make(map[types.PermissionTier]map[types.Permission]bool)
	for _, r := range rules {
		if held[r.Tier] == nil {
			held[r.Tier] = make(map[types.Permission]bool)
		}
		held[r.Tier][r.Permission] = true
	}
	// The seeded rows mirror the shipped defaults
	s.True(held[types.PermissionTierPartner][types.PermissionDeleteMatters])
	s.True(held[types.PermissionTierReadOnly][types.PermissionViewMatters])
	s.False(held[types.PermissionTierReadOnly][types.PermissionCreateMatters])
}

func (s *OnboardingServiceSuite) TestSignUpExistingPhoneFallsBackToLogin() {
	first := s.signUp("+22790222222")
	second := s.signUp("+22790222222")

	s.True(first.IsNewUser)
	s.False(second.IsNewUser)
	s.Equal(first.UserID, second.UserID)
	s.Equal(first.TenantID, second.TenantID)
}

func (s *OnboardingServiceSuite) TestLoginUnknownPhone() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Phone:    "+22790333333",
		Password: "whatever-password",
	})
	s.Error(err)
	s.True(ierr.IsNotAuthenticated(err))
}

func (s *OnboardingServiceSuite) TestLoginWrongPassword() {
	s.signUp("+22790444444")

	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Phone:    "+22790444444",
		Password: "not-the-password",
	})
	s.Error(err)
	s.True(ierr.IsNotAuthenticated(err))
}

func (s *OnboardingServiceSuite) TestLoginSucceeds() {
	created := s.signUp("+22790555555")

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Phone:    "+22790555555",
		Password: "correct-horse-battery",
	})
	s.NoError(err)
	s.False(resp.IsNewUser)
	s.Equal(created.UserID, resp.UserID)
	s.NotEmpty(resp.Token)
}

func (s *OnboardingServiceSuite) TestLoginDisabledAccount() {
	created := s.signUp("+22790666666")

	firmCtx := types.SetTenantID(s.GetContext(), created.TenantID)
	profile, err := s.GetStores().UserRepo.GetByID(firmCtx, created.UserID)
	s.NoError(err)
	profile.Disabled = true
	s.NoError(s.GetStores().UserRepo.Update(firmCtx, profile))

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Phone:    "+22790666666",
		Password: "correct-horse-battery",
	})
	s.Error(err)
	s.True(ierr.IsAccountDisabled(err))
}

func (s *OnboardingServiceSuite) TestInvalidPhoneRejected() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Phone:    "+33612345678",
		Password: "correct-horse-battery",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OnboardingServiceSuite) TestAuthBudgetPerPhone() {
	// The auth budget allows 5 attempts per phone per window; the 6th
	// is rejected regardless of outcome.
	for i := 0; i < 5; i++ {
		_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
			Phone:    "+22790777777",
			Password: "whatever-password",
		})
		s.Error(err)
		s.True(ierr.IsNotAuthenticated(err))
	}

	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Phone:    "+22790777777",
		Password: "whatever-password",
	})
	s.Error(err)
	s.True(ierr.IsRateLimited(err))

	// Other phones keep their own budget
	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Phone:    "+22790888888",
		Password: "whatever-password",
	})
	s.Error(err)
	s.True(ierr.IsNotAuthenticated(err))
}

func (s *OnboardingServiceSuite) TestSharedModeJoinsExistingFirm() {
	shared := tenant.NewTenant("Cabinet Partage")
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), shared))

	cfg := *s.GetConfig()
	cfg.Onboarding.Mode = types.OnboardingModeShared
	cfg.Onboarding.SharedTenantID = shared.ID

	params := s.params
	params.Config = &cfg
	service := NewOnboardingService(params)

	resp, err := service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Phone:    "+22790999999",
		Password: "correct-horse-battery",
	})
	s.NoError(err)
	s.Equal(shared.ID, resp.TenantID)

	firmCtx := types.SetTenantID(s.GetContext(), shared.ID)
	profile, err := s.GetStores().UserRepo.GetByID(firmCtx, resp.UserID)
	s.NoError(err)
	// Members of a shared firm start on the default tier, not admin
	s.Equal(types.PermissionTierAssociate, profile.PermissionTier)
}
