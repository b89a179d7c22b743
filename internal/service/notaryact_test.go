package service

import (
	"testing"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/client"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type NotaryActServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    NotaryActService
	testClient *client.Client
}

func TestNotaryActService(t *testing.T) {
	suite.Run(t, new(NotaryActServiceSuite))
}

func (s *NotaryActServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *NotaryActServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewNotaryActService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		RBAC:          s.GetRBAC(),
		Limiter:       s.GetLimiter(),
		MatterRepo:    stores.MatterRepo,
		ClientRepo:    stores.ClientRepo,
		NotaryActRepo: stores.NotaryActRepo,
	})
}

func (s *NotaryActServiceSuite) setupTestData() {
	s.testClient = client.NewClient(s.GetContext(), types.ClientTypeIndividual)
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), s.testClient))
}

func (s *NotaryActServiceSuite) TestCreateActDefaults() {
	resp, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
		ActType: types.NotaryActTypePropertySale,
		Title:   "Vente immobiliere quartier Plateau",
	})
	s.NoError(err)
	s.Equal(types.NotaryActTypePropertySale, resp.ActType)
	// The register stamps today when no act date is given
	s.WithinDuration(time.Now().UTC(), resp.ActDate, time.Minute)
	s.False(resp.Signed)
	s.Nil(resp.SignedAt)
	s.True(resp.NotaryFees.IsZero())
	s.True(resp.TaxAmount.IsZero())
}

func (s *NotaryActServiceSuite) TestCreateSignedActStampsTimestamp() {
	resp, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
		ActType:    types.NotaryActTypeDonation,
		Title:      "Donation entre vifs",
		ClientID:   s.testClient.ID,
		Signed:     true,
		NotaryFees: lo.ToPtr(decimal.NewFromInt(75000)),
		TaxAmount:  lo.ToPtr(decimal.NewFromInt(12000)),
	})
	s.NoError(err)
	s.True(resp.Signed)
	s.NotNil(resp.SignedAt)
	s.True(resp.NotaryFees.Equal(decimal.NewFromInt(75000)))
}

func (s *NotaryActServiceSuite) TestCreateActValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateNotaryActRequest
	}{
		{
			name: "title_too_short",
			req:  &dto.CreateNotaryActRequest{ActType: types.NotaryActTypeWill, Title: "ab"},
		},
		{
			name: "unknown_type",
			req:  &dto.CreateNotaryActRequest{ActType: types.NotaryActType("marriage"), Title: "Acte notarie"},
		},
		{
			name: "negative_notary_fees",
			req: &dto.CreateNotaryActRequest{
				ActType:    types.NotaryActTypeLease,
				Title:      "Bail commercial",
				NotaryFees: lo.ToPtr(decimal.NewFromInt(-1)),
			},
		},
		{
			name: "negative_tax",
			req: &dto.CreateNotaryActRequest{
				ActType:   types.NotaryActTypeLease,
				Title:     "Bail commercial",
				TaxAmount: lo.ToPtr(decimal.NewFromInt(-1)),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateAct(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *NotaryActServiceSuite) TestCreateActUnknownClient() {
	_, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
		ActType:  types.NotaryActTypeAffidavit,
		Title:    "Attestation notariee",
		ClientID: "client_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *NotaryActServiceSuite) TestUpdateActSignatureLifecycle() {
	created, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
		ActType: types.NotaryActTypeCompanyFormation,
		Title:   "Statuts SARL Sahel Distribution",
	})
	s.NoError(err)

	signed, err := s.service.UpdateAct(s.GetContext(), created.ID, &dto.UpdateNotaryActRequest{
		Signed: lo.ToPtr(true),
	})
	s.NoError(err)
	s.True(signed.Signed)
	s.NotNil(signed.SignedAt)

	// Withdrawing the signature clears the timestamp
	unsigned, err := s.service.UpdateAct(s.GetContext(), created.ID, &dto.UpdateNotaryActRequest{
		Signed: lo.ToPtr(false),
	})
	s.NoError(err)
	s.False(unsigned.Signed)
	s.Nil(unsigned.SignedAt)
}

func (s *NotaryActServiceSuite) TestListActsFilters() {
	for _, actType := range []types.NotaryActType{
		types.NotaryActTypeWill,
		types.NotaryActTypeWill,
		types.NotaryActTypePowerOfAttorney,
	} {
		_, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
			ActType:  actType,
			Title:    "Acte notarie",
			ClientID: s.testClient.ID,
		})
		s.NoError(err)
	}

	filter := types.NewNotaryActFilter()
	filter.ActType = types.NotaryActTypeWill
	resp, err := s.service.ListActs(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)

	filter = types.NewNotaryActFilter()
	filter.Signed = lo.ToPtr(false)
	resp, err = s.service.ListActs(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 3)
}

func (s *NotaryActServiceSuite) TestListActsScopedToTenant() {
	_, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
		ActType: types.NotaryActTypeInheritanceCertificate,
		Title:   "Certificat d'heredite",
	})
	s.NoError(err)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	resp, err := s.service.ListActs(otherCtx, types.NewNotaryActFilter())
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *NotaryActServiceSuite) TestActPermissions() {
	created, err := s.service.CreateAct(s.GetContext(), &dto.CreateNotaryActRequest{
		ActType: types.NotaryActTypeOther,
		Title:   "Acte divers",
	})
	s.NoError(err)

	readOnlyCtx := types.SetPermissionTier(s.GetContext(), types.PermissionTierReadOnly)
	_, err = s.service.UpdateAct(readOnlyCtx, created.ID, &dto.UpdateNotaryActRequest{
		Signed: lo.ToPtr(true),
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// The read-only tier can still consult the register
	_, err = s.service.GetAct(readOnlyCtx, created.ID)
	s.NoError(err)

	s.NoError(s.service.DeleteAct(s.GetContext(), created.ID))
	_, err = s.service.GetAct(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
