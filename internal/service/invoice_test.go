package service

import (
	"fmt"
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/client"
	"github.com/jurisflow/jurisflow/internal/domain/tenant"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    InvoiceService
	testClient *client.Client
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *InvoiceServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		RBAC:        s.GetRBAC(),
		Limiter:     s.GetLimiter(),
		TenantRepo:  stores.TenantRepo,
		ClientRepo:  stores.ClientRepo,
		MatterRepo:  stores.MatterRepo,
		InvoiceRepo: stores.InvoiceRepo,
		PaymentRepo: stores.PaymentRepo,
	})
}

func (s *InvoiceServiceSuite) setupTestData() {
	firm := tenant.NewTenant("Cabinet Test")
	firm.ID = types.DefaultTenantID
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), firm))

	s.testClient = &client.Client{
		ID:         s.GetUUID(),
		ClientType: types.ClientTypeIndividual,
		FirstName:  "Amadou",
		LastName:   "Diallo",
		Phone:      "+22790123456",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), s.testClient))
}

func (s *InvoiceServiceSuite) createInvoice(subtotal int64) *dto.InvoiceResponse {
	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientID: s.testClient.ID,
		LineItems: []*dto.LineItemRequest{
			{
				Description: "Consultation juridique",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(subtotal),
			},
		},
	})
	s.NoError(err)
	s.NotNil(resp)
	return resp
}

func (s *InvoiceServiceSuite) TestCreateInvoiceComputesTotals() {
	resp := s.createInvoice(100000)

	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus)
	s.True(resp.SubtotalHT.Equal(decimal.NewFromInt(100000)), "subtotal %s", resp.SubtotalHT)
	s.True(resp.TVARate.Equal(decimal.NewFromInt(19)))
	s.True(resp.TVAAmount.Equal(decimal.NewFromInt(19000)), "tva %s", resp.TVAAmount)
	s.True(resp.TotalTTC.Equal(decimal.NewFromInt(119000)), "ttc %s", resp.TotalTTC)
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(119000)))
	s.Equal("XOF", resp.Currency)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRoundsToWholeFrancs() {
	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientID: s.testClient.ID,
		LineItems: []*dto.LineItemRequest{
			{
				Description: "Vacations",
				Quantity:    decimal.NewFromFloat(1.5),
				UnitPrice:   decimal.NewFromInt(33333),
			},
		},
	})
	s.NoError(err)

	// 1.5 * 33333 = 49999.5, rounded to 50000; TVA 19% = 9500
	s.True(resp.SubtotalHT.Equal(decimal.NewFromInt(50000)), "subtotal %s", resp.SubtotalHT)
	s.True(resp.TVAAmount.Equal(decimal.NewFromInt(9500)), "tva %s", resp.TVAAmount)
	s.True(resp.TotalTTC.Equal(decimal.NewFromInt(59500)), "ttc %s", resp.TotalTTC)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNumbersAreSequentialPerFirm() {
	first := s.createInvoice(10000)
	second := s.createInvoice(20000)

	year := first.IssueDate.Year()
	s.Equal(fmt.Sprintf("FAC-%d-0001", year), first.InvoiceNumber)
	s.Equal(fmt.Sprintf("FAC-%d-0002", year), second.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownClient() {
	_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientID: "client_missing",
		LineItems: []*dto.LineItemRequest{
			{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateInvoiceRequest
	}{
		{
			name: "missing_client",
			req: &dto.CreateInvoiceRequest{
				LineItems: []*dto.LineItemRequest{
					{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
				},
			},
		},
		{
			name: "no_line_items",
			req:  &dto.CreateInvoiceRequest{ClientID: "client_1"},
		},
		{
			name: "zero_quantity",
			req: &dto.CreateInvoiceRequest{
				ClientID: "client_1",
				LineItems: []*dto.LineItemRequest{
					{Description: "x", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(100)},
				},
			},
		},
		{
			name: "negative_unit_price",
			req: &dto.CreateInvoiceRequest{
				ClientID: "client_1",
				LineItems: []*dto.LineItemRequest{
					{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-5)},
				},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateInvoice(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *InvoiceServiceSuite) TestFinalizeInvoice() {
	created := s.createInvoice(50000)

	resp, err := s.service.FinalizeInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, resp.InvoiceStatus)

	// A second finalize is rejected, only drafts move to sent
	_, err = s.service.FinalizeInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestUpdateClosedInvoiceRejected() {
	created := s.createInvoice(50000)

	_, err := s.service.CancelInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	notes := "late edit"
	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{Notes: &notes})
	s.Error(err)
	s.True(ierr.IsInvoiceClosed(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceRecalculates() {
	created := s.createInvoice(50000)

	resp, err := s.service.UpdateInvoice(s.GetContext(), created.ID, &dto.UpdateInvoiceRequest{
		LineItems: []*dto.LineItemRequest{
			{Description: "Honoraires", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(40000)},
		},
	})
	s.NoError(err)
	s.True(resp.SubtotalHT.Equal(decimal.NewFromInt(80000)))
	s.True(resp.TVAAmount.Equal(decimal.NewFromInt(15200)))
	s.True(resp.TotalTTC.Equal(decimal.NewFromInt(95200)))
}

func (s *InvoiceServiceSuite) TestCancelClosedInvoiceRejected() {
	created := s.createInvoice(50000)

	_, err := s.service.CancelInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.CancelInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvoiceClosed(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoiceDraftsOnly() {
	draft := s.createInvoice(10000)
	sent := s.createInvoice(20000)

	_, err := s.service.FinalizeInvoice(s.GetContext(), sent.ID)
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), draft.ID))

	err = s.service.DeleteInvoice(s.GetContext(), sent.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.service.GetInvoice(s.GetContext(), draft.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesScopedToFirm() {
	s.createInvoice(10000)
	s.createInvoice(20000)

	resp, err := s.service.ListInvoices(s.GetContext(), types.NewInvoiceFilter())
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_other")
	resp, err = s.service.ListInvoices(otherCtx, types.NewInvoiceFilter())
	s.NoError(err)
	s.Len(resp.Items, 0)
}

func (s *InvoiceServiceSuite) TestPermissionDeniedForReadOnlyTier() {
	ctx := types.SetPermissionTier(s.GetContext(), types.PermissionTierReadOnly)

	_, err := s.service.CreateInvoice(ctx, &dto.CreateInvoiceRequest{
		ClientID: s.testClient.ID,
		LineItems: []*dto.LineItemRequest{
			{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
