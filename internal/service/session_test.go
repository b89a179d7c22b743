package service

import (
	"context"
	"testing"

	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/stretchr/testify/suite"
)

type SessionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SessionService
	profile *user.User
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}

func (s *SessionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *SessionServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewSessionService(ServiceParams{
		Logger:   s.GetLogger(),
		Config:   s.GetConfig(),
		DB:       s.GetDB(),
		Cache:    s.GetCache(),
		RBAC:     s.GetRBAC(),
		Limiter:  s.GetLimiter(),
		UserRepo: stores.UserRepo,
	})
}

func (s *SessionServiceSuite) setupTestData() {
	s.profile = user.NewUser(s.GetContext(), "auth_subject", "+22790200001")
	s.profile.ID = types.DefaultUserID
	s.profile.FullName = "Maitre Sani"
	s.profile.PermissionTier = types.PermissionTierPartner
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.profile))
}

func (s *SessionServiceSuite) TestResolveSession() {
	ctx, u, err := s.service.ResolveSession(context.Background(), "auth_subject")
	s.NoError(err)
	s.Equal(s.profile.ID, u.ID)

	// The profile, not the token, decides tenant membership and tier
	s.Equal(s.profile.TenantID, types.GetTenantID(ctx))
	s.Equal(s.profile.ID, types.GetUserID(ctx))
	s.Equal(types.PermissionTierPartner, types.GetPermissionTier(ctx))
}

func (s *SessionServiceSuite) TestResolveSessionUnknownSubject() {
	// A valid token without a profile is its own failure kind, distinct
	// from a plain missing row
	_, _, err := s.service.ResolveSession(context.Background(), "auth_stranger")
	s.Error(err)
	s.True(ierr.IsProfileNotFound(err))
	s.False(ierr.IsNotFound(err))
}

func (s *SessionServiceSuite) TestResolveSessionEmptySubject() {
	_, _, err := s.service.ResolveSession(context.Background(), "")
	s.Error(err)
	s.True(ierr.IsNotAuthenticated(err))
}

func (s *SessionServiceSuite) TestResolveSessionDisabledAccount() {
	s.profile.Disabled = true
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.profile))

	_, _, err := s.service.ResolveSession(context.Background(), "auth_subject")
	s.Error(err)
	s.True(ierr.IsAccountDisabled(err))
}

func (s *SessionServiceSuite) TestGetSession() {
	resp, err := s.service.GetSession(s.GetContext())
	s.NoError(err)
	s.Equal(types.DefaultUserID, resp.UserID)
	s.Equal("Maitre Sani", resp.FullName)
	s.Equal(types.PermissionTierPartner, resp.PermissionTier)
	s.Contains(resp.Permissions, types.PermissionDeleteMatters)
	s.NotContains(resp.Permissions, types.PermissionManageSettings)
}

func (s *SessionServiceSuite) TestGetSessionUnauthenticated() {
	_, err := s.service.GetSession(context.Background())
	s.Error(err)
	s.True(ierr.IsNotAuthenticated(err))
}
