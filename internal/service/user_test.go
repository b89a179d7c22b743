package service

import (
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/rbac"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  UserService
	rbac     *rbac.RBACService
	caller   *user.User
	coworker *user.User
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *UserServiceSuite) setupService() {
	stores := s.GetStores()
	s.rbac = s.GetRBAC()
	s.service = NewUserService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		DB:             s.GetDB(),
		Cache:          s.GetCache(),
		RBAC:           s.rbac,
		Limiter:        s.GetLimiter(),
		UserRepo:       stores.UserRepo,
		PermissionRepo: stores.PermissionRepo,
	})
}

func (s *UserServiceSuite) setupTestData() {
	s.caller = user.NewUser(s.GetContext(), "auth_caller", "+22790100001")
	s.caller.ID = types.DefaultUserID
	s.caller.FullName = "Maitre Souley"
	s.caller.PermissionTier = types.PermissionTierAdmin
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.caller))

	s.coworker = user.NewUser(s.GetContext(), "auth_coworker", "+22790100002")
	s.coworker.FullName = "Maitre Rabiou"
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.coworker))
}

func (s *UserServiceSuite) TestGetOwnProfile() {
	resp, err := s.service.GetUser(s.GetContext(), s.caller.ID)
	s.NoError(err)
	s.Equal("Maitre Souley", resp.FullName)
}

func (s *UserServiceSuite) TestGetOtherProfileRequiresManageUsers() {
	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)

	_, err := s.service.GetUser(associateCtx, s.coworker.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// The same read succeeds for an admin
	resp, err := s.service.GetUser(s.GetContext(), s.coworker.ID)
	s.NoError(err)
	s.Equal("Maitre Rabiou", resp.FullName)
}

func (s *UserServiceSuite) TestUpdateOwnProfile() {
	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)

	resp, err := s.service.UpdateUser(associateCtx, s.caller.ID, &dto.UpdateUserRequest{
		FullName: lo.ToPtr("Maitre Souleymane"),
	})
	s.NoError(err)
	s.Equal("Maitre Souleymane", resp.FullName)
}

func (s *UserServiceSuite) TestTierChangeRequiresManageUsers() {
	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)

	// Changing one's own tier is a management operation too
	_, err := s.service.UpdateUser(associateCtx, s.caller.ID, &dto.UpdateUserRequest{
		PermissionTier: lo.ToPtr(types.PermissionTierPartner),
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	resp, err := s.service.UpdateUser(s.GetContext(), s.coworker.ID, &dto.UpdateUserRequest{
		PermissionTier: lo.ToPtr(types.PermissionTierPartner),
	})
	s.NoError(err)
	s.Equal(types.PermissionTierPartner, resp.PermissionTier)
}

func (s *UserServiceSuite) TestUnknownTierRejected() {
	_, err := s.service.UpdateUser(s.GetContext(), s.coworker.ID, &dto.UpdateUserRequest{
		PermissionTier: lo.ToPtr(types.PermissionTier("superuser")),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestCannotDisableOwnAccount() {
	_, err := s.service.UpdateUser(s.GetContext(), s.caller.ID, &dto.UpdateUserRequest{
		Disabled: lo.ToPtr(true),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *UserServiceSuite) TestDisableCoworker() {
	resp, err := s.service.UpdateUser(s.GetContext(), s.coworker.ID, &dto.UpdateUserRequest{
		Disabled: lo.ToPtr(true),
	})
	s.NoError(err)
	s.True(resp.Disabled)

	// Re-enabling works the same way
	resp, err = s.service.UpdateUser(s.GetContext(), s.coworker.ID, &dto.UpdateUserRequest{
		Disabled: lo.ToPtr(false),
	})
	s.NoError(err)
	s.False(resp.Disabled)
}

func (s *UserServiceSuite) TestGetPermissionMatrixDefaults() {
	// A firm with no stored rows reads the shipped defaults
	resp, err := s.service.GetPermissionMatrix(s.GetContext())
	s.NoError(err)
	s.Contains(resp.Matrix[types.PermissionTierPartner], types.PermissionDeleteMatters)
	s.NotContains(resp.Matrix[types.PermissionTierReadOnly], types.PermissionCreateMatters)
}

func (s *UserServiceSuite) TestGetPermissionMatrixRequiresManageUsers() {
	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)
	_, err := s.service.GetPermissionMatrix(associateCtx)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestUpdatePermissionMatrix() {
	resp, err := s.service.UpdatePermissionMatrix(s.GetContext(), &dto.UpdatePermissionMatrixRequest{
		Tier: types.PermissionTierFrontDesk,
		Permissions: []types.Permission{
			types.PermissionViewClients,
			types.PermissionCreateMatters,
		},
	})
	s.NoError(err)
	s.ElementsMatch(
		[]types.Permission{types.PermissionViewClients, types.PermissionCreateMatters},
		resp.Matrix[types.PermissionTierFrontDesk],
	)
	// The first edit materializes the defaults for the untouched tiers
	s.Contains(resp.Matrix[types.PermissionTierPartner], types.PermissionDeleteMatters)

	// The edit governs checks immediately
	s.True(s.rbac.HasPermission(s.GetContext(), types.PermissionTierFrontDesk, types.PermissionCreateMatters))
	s.False(s.rbac.HasPermission(s.GetContext(), types.PermissionTierFrontDesk, types.PermissionRecordPayments))
}

func (s *UserServiceSuite) TestUpdatePermissionMatrixInvalidatesCache() {
	_, err := s.service.UpdatePermissionMatrix(s.GetContext(), &dto.UpdatePermissionMatrixRequest{
		Tier:        types.PermissionTierReadOnly,
		Permissions: []types.Permission{types.PermissionViewMatters},
	})
	s.NoError(err)

	// Warm the cache, then edit again
	s.False(s.rbac.HasPermission(s.GetContext(), types.PermissionTierReadOnly, types.PermissionViewInvoices))

	_, err = s.service.UpdatePermissionMatrix(s.GetContext(), &dto.UpdatePermissionMatrixRequest{
		Tier:        types.PermissionTierReadOnly,
		Permissions: []types.Permission{types.PermissionViewMatters, types.PermissionViewInvoices},
	})
	s.NoError(err)
	s.True(s.rbac.HasPermission(s.GetContext(), types.PermissionTierReadOnly, types.PermissionViewInvoices))
}

func (s *UserServiceSuite) TestUpdatePermissionMatrixScopedToFirm() {
	_, err := s.service.UpdatePermissionMatrix(s.GetContext(), &dto.UpdatePermissionMatrixRequest{
		Tier:        types.PermissionTierAssociate,
		Permissions: []types.Permission{types.PermissionViewMatters},
	})
	s.NoError(err)

	// Another firm keeps the shipped defaults
	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	s.True(s.rbac.HasPermission(otherCtx, types.PermissionTierAssociate, types.PermissionCreateMatters))
	s.False(s.rbac.HasPermission(s.GetContext(), types.PermissionTierAssociate, types.PermissionCreateMatters))
}

func (s *UserServiceSuite) TestUpdatePermissionMatrixValidation() {
	testCases := []struct {
		name string
		req  *dto.UpdatePermissionMatrixRequest
	}{
		{
			name: "admin_tier_not_editable",
			req: &dto.UpdatePermissionMatrixRequest{
				Tier:        types.PermissionTierAdmin,
				Permissions: []types.Permission{types.PermissionViewMatters},
			},
		},
		{
			name: "unknown_tier",
			req: &dto.UpdatePermissionMatrixRequest{
				Tier:        types.PermissionTier("superuser"),
				Permissions: []types.Permission{types.PermissionViewMatters},
			},
		},
		{
			name: "unknown_permission",
			req: &dto.UpdatePermissionMatrixRequest{
				Tier:        types.PermissionTierReadOnly,
				Permissions: []types.Permission{types.Permission("drop_tables")},
			},
		},
		{
			name: "duplicate_permission",
			req: &dto.UpdatePermissionMatrixRequest{
				Tier:        types.PermissionTierReadOnly,
				Permissions: []types.Permission{types.PermissionViewMatters, types.PermissionViewMatters},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.UpdatePermissionMatrix(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *UserServiceSuite) TestListUsers() {
	resp, err := s.service.ListUsers(s.GetContext(), types.NewUserFilter())
	s.NoError(err)
	s.Len(resp.Items, 2)

	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)
	_, err = s.service.ListUsers(associateCtx, types.NewUserFilter())
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
