package service

import (
	"testing"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/client"
	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type MatterServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    MatterService
	testClient *client.Client
}

func TestMatterService(t *testing.T) {
	suite.Run(t, new(MatterServiceSuite))
}

func (s *MatterServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *MatterServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewMatterService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		RBAC:       s.GetRBAC(),
		Limiter:    s.GetLimiter(),
		UserRepo:   stores.UserRepo,
		ClientRepo: stores.ClientRepo,
		MatterRepo: stores.MatterRepo,
	})
}

func (s *MatterServiceSuite) setupTestData() {
	s.testClient = client.NewClient(s.GetContext(), types.ClientTypeIndividual)
	s.testClient.FirstName = "Ibrahim"
	s.testClient.LastName = "Oumarou"
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), s.testClient))
}

// seedCaller registers the acting user's profile with the given
// professional role so role contextual validation can resolve it.
func (s *MatterServiceSuite) seedCaller(role types.ProfessionalRole) {
	u := user.NewUser(s.GetContext(), "auth_test", "+22790000001")
	u.ID = types.DefaultUserID
	u.FullName = "Maitre Test"
	u.ProfessionalRole = role
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
}

func (s *MatterServiceSuite) TestCreateMatterForLawyerRequiresJurisdiction() {
	s.seedCaller(types.ProfessionalRoleLawyer)

	_, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:    "Dossier Oumarou c. SONIBANK",
		ClientID: s.testClient.ID,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *MatterServiceSuite) TestCreateMatterForLawyerWithJurisdiction() {
	s.seedCaller(types.ProfessionalRoleLawyer)

	resp, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:        "Dossier Oumarou c. SONIBANK",
		ClientID:     s.testClient.ID,
		Jurisdiction: "Tribunal de Grande Instance de Niamey",
	})
	s.NoError(err)
	s.Equal(types.MatterStatusOpen, resp.MatterStatus)
	s.NotEmpty(resp.Reference)
	s.Empty(resp.Warnings)
}

func (s *MatterServiceSuite) TestCreateMatterForBailiffWarnsOnMissingServiceDate() {
	s.seedCaller(types.ProfessionalRoleBailiff)

	resp, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:    "Signification de jugement",
		ClientID: s.testClient.ID,
	})
	s.NoError(err)
	s.Len(resp.Warnings, 1)
	s.Contains(resp.Warnings[0], "service date not recorded yet")
}

func (s *MatterServiceSuite) TestCreateMatterForBailiffWithServiceDate() {
	s.seedCaller(types.ProfessionalRoleBailiff)

	resp, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:       "Signification de jugement",
		ClientID:    s.testClient.ID,
		ServiceDate: lo.ToPtr(time.Now().UTC()),
	})
	s.NoError(err)
	s.Empty(resp.Warnings)
}

func (s *MatterServiceSuite) TestCreateMatterForNotary() {
	s.seedCaller(types.ProfessionalRoleNotary)

	resp, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:    "Acte de vente immobiliere",
		ClientID: s.testClient.ID,
	})
	s.NoError(err)
	s.Empty(resp.Warnings)
}

func (s *MatterServiceSuite) TestCreateMatterUnknownClient() {
	s.seedCaller(types.ProfessionalRoleNotary)

	_, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:    "Dossier sans client",
		ClientID: "client_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *MatterServiceSuite) TestUpdateMatterToClosedStampsClosedAt() {
	s.seedCaller(types.ProfessionalRoleNotary)

	created, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:    "Succession Garba",
		ClientID: s.testClient.ID,
	})
	s.NoError(err)
	s.Nil(created.ClosedAt)

	updated, err := s.service.UpdateMatter(s.GetContext(), created.ID, &dto.UpdateMatterRequest{
		MatterStatus: lo.ToPtr(types.MatterStatusClosed),
	})
	s.NoError(err)
	s.Equal(types.MatterStatusClosed, updated.MatterStatus)
	s.NotNil(updated.ClosedAt)
}

func (s *MatterServiceSuite) TestUpdateMatterReappliesRoleValidation() {
	s.seedCaller(types.ProfessionalRoleLawyer)

	created, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:        "Dossier penal",
		ClientID:     s.testClient.ID,
		Jurisdiction: "Cour d'Appel de Niamey",
	})
	s.NoError(err)

	_, err = s.service.UpdateMatter(s.GetContext(), created.ID, &dto.UpdateMatterRequest{
		Jurisdiction: lo.ToPtr(""),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *MatterServiceSuite) TestListMattersScopedToFirm() {
	s.seedCaller(types.ProfessionalRoleNotary)

	for _, title := range []string{"Dossier A", "Dossier B"} {
		_, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
			Title:    title,
			ClientID: s.testClient.ID,
		})
		s.NoError(err)
	}

	resp, err := s.service.ListMatters(s.GetContext(), types.NewMatterFilter())
	s.NoError(err)
	s.Len(resp.Items, 2)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	resp, err = s.service.ListMatters(otherCtx, types.NewMatterFilter())
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *MatterServiceSuite) TestSearchConsumesSearchBudget() {
	s.seedCaller(types.ProfessionalRoleNotary)

	filter := types.NewMatterFilter()
	filter.Search = "Oumarou"

	// The search budget allows 30 lookups per window; the 31st is
	// rejected with a rate limit error.
	var err error
	for i := 0; i < 30; i++ {
		_, err = s.service.ListMatters(s.GetContext(), filter)
		s.NoError(err)
	}
	_, err = s.service.ListMatters(s.GetContext(), filter)
	s.Error(err)
	s.True(ierr.IsRateLimited(err))
}

func (s *MatterServiceSuite) TestDeleteMatterRequiresElevatedTier() {
	s.seedCaller(types.ProfessionalRoleLawyer)

	created, err := s.service.CreateMatter(s.GetContext(), &dto.CreateMatterRequest{
		Title:        "Dossier a supprimer",
		ClientID:     s.testClient.ID,
		Jurisdiction: "TGI Niamey",
	})
	s.NoError(err)

	associateCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierAssociate)
	err = s.service.DeleteMatter(associateCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	s.NoError(s.service.DeleteMatter(s.GetContext(), created.ID))
	_, err = s.service.GetMatter(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
