package service

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/auth"
	domainAuth "github.com/jurisflow/jurisflow/internal/domain/auth"
	"github.com/jurisflow/jurisflow/internal/domain/permission"
	"github.com/jurisflow/jurisflow/internal/domain/tenant"
	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/rbac"
	"github.com/jurisflow/jurisflow/internal/types"
)

// OnboardingService handles phone based sign up and login. Sign up is
// idempotent on the phone number: a second sign up with a phone that
// already has a profile behaves like a login.
type OnboardingService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type onboardingService struct {
	ServiceParams
}

func NewOnboardingService(params ServiceParams) OnboardingService {
	return &onboardingService{ServiceParams: params}
}

// raceLost aborts the provisioning transaction when a concurrent sign
// up created the profile first, rolling back the freshly created firm.
var raceLost = ierr.NewError("profile already provisioned").Mark(ierr.ErrAlreadyExists)

func (s *onboardingService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	phone, err := types.FormatPhoneE164(req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.Limiter.Allow(ctx, phone, types.RateLimitCategoryAuth); err != nil {
		return nil, err
	}

	// Existing phone falls back to a login, never a duplicate profile
	if existing, err := s.UserRepo.GetByPhone(ctx, phone); err == nil && existing != nil {
		return s.loginExisting(ctx, existing, auth.AuthRequest{
			Phone:    phone,
			Password: req.Password,
			OTP:      req.OTP,
		})
	}

	authResp, err := s.AuthProvider.SignUp(ctx, auth.AuthRequest{
		Phone:    phone,
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		return nil, err
	}

	created, firmID, err := s.provisionProfile(ctx, req, phone, authResp)
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			// Lost the race to a concurrent sign up with the same phone
			if existing, lookupErr := s.UserRepo.GetByPhone(ctx, phone); lookupErr == nil {
				return s.loginExisting(ctx, existing, auth.AuthRequest{
					Phone:    phone,
					Password: req.Password,
					OTP:      req.OTP,
				})
			}
		}
		return nil, err
	}

	if err := s.AuthProvider.AssignUserToTenant(ctx, created.AuthID, firmID); err != nil {
		s.Logger.Errorw("failed to assign user to firm on provider",
			"user_id", created.ID,
			"tenant_id", firmID,
			"error", err)
	}

	return &dto.AuthResponse{
		Token:     authResp.AuthToken,
		UserID:    created.ID,
		TenantID:  firmID,
		IsNewUser: true,
	}, nil
}

// provisionProfile creates the firm (in dedicated mode) and the profile
// in one transaction. The first member of a new firm is its admin.
func (s *onboardingService) provisionProfile(ctx context.Context, req *dto.SignUpRequest, phone string, authResp *auth.AuthResponse) (*user.User, string, error) {
	var created *user.User
	var firmID string

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		firmID, err = s.resolveFirm(txCtx, req)
		if err != nil {
			return err
		}

		txCtx = types.SetTenantID(txCtx, firmID)
		txCtx = types.SetUserID(txCtx, authResp.ID)

		// A fresh firm gets its own copy of the shipped permission
		// matrix, so later edits stay scoped to the firm
		if s.Config.Onboarding.Mode == types.OnboardingModeDedicated {
			if err := s.seedPermissionMatrix(txCtx); err != nil {
				return err
			}
		}

		newUser := user.NewUser(txCtx, authResp.ID, phone)
		newUser.Email = req.Email
		newUser.FullName = req.FullName
		newUser.ProfessionalRole = req.ProfessionalRole
		if s.Config.Onboarding.Mode == types.OnboardingModeDedicated {
			newUser.PermissionTier = types.PermissionTierAdmin
		}

		created, err = s.UserRepo.UpsertByPhone(txCtx, newUser)
		if err != nil {
			return err
		}
		if created.ID != newUser.ID {
			return raceLost
		}

		if s.AuthProvider.GetProvider() == types.AuthProviderLocal {
			record := domainAuth.NewAuth(created.ID, s.AuthProvider.GetProvider(), authResp.ProviderToken)
			if err := s.AuthRepo.CreateAuth(txCtx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return created, firmID, nil
}

func (s *onboardingService) seedPermissionMatrix(ctx context.Context) error {
	rules := make([]*permission.Rule, 0)
	for tier, grants := range rbac.DefaultGrants() {
		for _, p := range grants {
			rules = append(rules, permission.NewRule(ctx, tier, p))
		}
	}
	return s.PermissionRepo.CreateBulk(ctx, rules)
}

func (s *onboardingService) resolveFirm(ctx context.Context, req *dto.SignUpRequest) (string, error) {
	if s.Config.Onboarding.Mode == types.OnboardingModeShared {
		sharedID := s.Config.Onboarding.SharedTenantID
		if _, err := s.TenantRepo.GetByID(ctx, sharedID); err != nil {
			return "", err
		}
		return sharedID, nil
	}

	name := req.FirmName
	if name == "" {
		name = req.FullName
	}
	if name == "" {
		name = req.Phone
	}
	firm := tenant.NewTenant(name)
	if err := s.TenantRepo.Create(ctx, firm); err != nil {
		return "", err
	}
	return firm.ID, nil
}

func (s *onboardingService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	phone, err := types.FormatPhoneE164(req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.Limiter.Allow(ctx, phone, types.RateLimitCategoryAuth); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByPhone(ctx, phone)
	if err != nil {
		if ierr.IsNotFound(err) {
			// Unknown phone reads the same as a bad credential
			return nil, ierr.NewError("invalid credentials").
				WithHint("Invalid phone number or credentials").
				Mark(ierr.ErrNotAuthenticated)
		}
		return nil, err
	}

	return s.loginExisting(ctx, u, auth.AuthRequest{
		Phone:    phone,
		Password: req.Password,
		OTP:      req.OTP,
	})
}

func (s *onboardingService) loginExisting(ctx context.Context, u *user.User, req auth.AuthRequest) (*dto.AuthResponse, error) {
	if u.Disabled {
		return nil, ierr.NewError("account disabled").
			WithHint("Your account has been disabled, contact your firm administrator").
			Mark(ierr.ErrAccountDisabled)
	}

	req.UserID = u.ID
	req.TenantID = u.TenantID

	var authInfo *domainAuth.Auth
	if s.AuthProvider.GetProvider() == types.AuthProviderLocal {
		var err error
		authInfo, err = s.AuthRepo.GetAuthByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
	}

	resp, err := s.AuthProvider.Login(ctx, req, authInfo)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   u.ID,
		TenantID: u.TenantID,
	}, nil
}
