package service

import (
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ClientServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClientService
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *ClientServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewClientService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		DB:         s.GetDB(),
		RBAC:       s.GetRBAC(),
		Limiter:    s.GetLimiter(),
		ClientRepo: stores.ClientRepo,
	})
}

func (s *ClientServiceSuite) TestCreateIndividualClient() {
	resp, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Aissata",
		LastName:   "Hamani",
		Phone:      "90123456",
		City:       "Niamey",
	})
	s.NoError(err)
	s.Equal("Aissata Hamani", resp.DisplayName)
	// Local numbers are stored in E.164 form
	s.Equal("+22790123456", resp.Phone)
	s.Equal(types.DefaultTenantID, resp.TenantID)
}

func (s *ClientServiceSuite) TestCreateCompanyClient() {
	resp, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		ClientType:  types.ClientTypeCompany,
		CompanyName: "SONIBANK SA",
	})
	s.NoError(err)
	s.Equal("SONIBANK SA", resp.DisplayName)
}

func (s *ClientServiceSuite) TestCreateClientValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateClientRequest
	}{
		{
			name: "individual_without_name",
			req:  &dto.CreateClientRequest{ClientType: types.ClientTypeIndividual},
		},
		{
			name: "company_without_name",
			req:  &dto.CreateClientRequest{ClientType: types.ClientTypeCompany},
		},
		{
			name: "unknown_type",
			req:  &dto.CreateClientRequest{ClientType: types.ClientType("ngo"), FirstName: "x"},
		},
		{
			name: "foreign_phone",
			req: &dto.CreateClientRequest{
				ClientType: types.ClientTypeIndividual,
				FirstName:  "Jean",
				Phone:      "+33612345678",
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateClient(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *ClientServiceSuite) TestUpdateClient() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Moussa",
		LastName:   "Ide",
	})
	s.NoError(err)

	updated, err := s.service.UpdateClient(s.GetContext(), created.ID, &dto.UpdateClientRequest{
		City:  lo.ToPtr("Zinder"),
		Phone: lo.ToPtr("96000000"),
	})
	s.NoError(err)
	s.Equal("Zinder", updated.City)
	s.Equal("+22796000000", updated.Phone)
	// Untouched fields survive the partial update
	s.Equal("Moussa", updated.FirstName)
}

func (s *ClientServiceSuite) TestTenantIsolation() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Halima",
	})
	s.NoError(err)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	_, err = s.service.GetClient(otherCtx, created.ID)
	s.Error(err)
	// Rows outside the caller's firm read as missing, never as forbidden
	s.True(ierr.IsNotFound(err))

	resp, err := s.service.ListClients(otherCtx, types.NewClientFilter())
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *ClientServiceSuite) TestFrontDeskCannotDelete() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Zeinab",
	})
	s.NoError(err)

	frontDeskCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierFrontDesk)

	// Front desk can create and edit clients but never delete them
	_, err = s.service.CreateClient(frontDeskCtx, &dto.CreateClientRequest{
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Rahila",
	})
	s.NoError(err)

	err = s.service.DeleteClient(frontDeskCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *ClientServiceSuite) TestUnknownTierFailsClosed() {
	ctx := types.SetPermissionTier(s.GetContext(), types.PermissionTier("intern"))

	_, err := s.service.ListClients(ctx, types.NewClientFilter())
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *ClientServiceSuite) TestListClientsSearch() {
	for _, name := range []string{"Boubacar", "Boureima", "Salamatou"} {
		_, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
			ClientType: types.ClientTypeIndividual,
			FirstName:  name,
		})
		s.NoError(err)
	}

	filter := types.NewClientFilter()
	filter.Search = "bou"
	resp, err := s.service.ListClients(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
}

func (s *ClientServiceSuite) TestDeleteClient() {
	created, err := s.service.CreateClient(s.GetContext(), &dto.CreateClientRequest{
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Oumou",
	})
	s.NoError(err)

	s.NoError(s.service.DeleteClient(s.GetContext(), created.ID))

	_, err = s.service.GetClient(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
