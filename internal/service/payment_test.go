package service

import (
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

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service        PaymentService
	invoiceService InvoiceService
	testClient     *client.Client
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *PaymentServiceSuite) setupService() {
	stores := s.GetStores()
	params := ServiceParams{
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
	}
	s.service = NewPaymentService(params)
	s.invoiceService = NewInvoiceService(params)
}

func (s *PaymentServiceSuite) setupTestData() {
	firm := tenant.NewTenant("Cabinet Test")
	firm.ID = types.DefaultTenantID
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), firm))

	s.testClient = client.NewClient(s.GetContext(), types.ClientTypeIndividual)
	s.testClient.FirstName = "Fatima"
	s.testClient.LastName = "Moussa"
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), s.testClient))
}

// sentInvoice issues an invoice of 100000 HT at 19% TVA (119000 TTC)
// and finalizes it so it can receive payments.
func (s *PaymentServiceSuite) sentInvoice() *dto.InvoiceResponse {
	created, err := s.invoiceService.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		ClientID: s.testClient.ID,
		LineItems: []*dto.LineItemRequest{
			{
				Description: "Honoraires",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(100000),
			},
		},
	})
	s.NoError(err)

	sent, err := s.invoiceService.FinalizeInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	return sent
}

func (s *PaymentServiceSuite) TestPartialPaymentKeepsInvoiceSent() {
	inv := s.sentInvoice()

	resp, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(50000),
		PaymentMethod: types.PaymentMethodOrangeMoney,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, resp.InvoiceStatus)
	s.True(resp.AmountDue.Equal(decimal.NewFromInt(69000)), "due %s", resp.AmountDue)
	s.Equal(types.PaymentStatusSucceeded, resp.PaymentStatus)

	updated, err := s.invoiceService.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.True(updated.AmountPaid.Equal(decimal.NewFromInt(50000)))
	s.Nil(updated.PaidAt)
}

func (s *PaymentServiceSuite) TestFullPaymentMarksInvoicePaid() {
	inv := s.sentInvoice()

	_, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(50000),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.NoError(err)

	resp, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(69000),
		PaymentMethod: types.PaymentMethodTransfer,
		Reference:     "VIR-2026-118",
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
	s.True(resp.AmountDue.IsZero())

	updated, err := s.invoiceService.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.True(updated.AmountPaid.Equal(decimal.NewFromInt(119000)))
	s.NotNil(updated.PaidAt)
}

func (s *PaymentServiceSuite) TestPaymentAgainstClosedInvoiceRejected() {
	inv := s.sentInvoice()

	_, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(119000),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.NoError(err)

	_, err = s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsInvoiceClosed(err))
}

func (s *PaymentServiceSuite) TestPaymentValidation() {
	inv := s.sentInvoice()

	testCases := []struct {
		name string
		req  *dto.RecordPaymentRequest
	}{
		{
			name: "missing_invoice",
			req: &dto.RecordPaymentRequest{
				Amount:        decimal.NewFromInt(1000),
				PaymentMethod: types.PaymentMethodCash,
			},
		},
		{
			name: "zero_amount",
			req: &dto.RecordPaymentRequest{
				InvoiceID:     inv.ID,
				Amount:        decimal.Zero,
				PaymentMethod: types.PaymentMethodCash,
			},
		},
		{
			name: "negative_amount",
			req: &dto.RecordPaymentRequest{
				InvoiceID:     inv.ID,
				Amount:        decimal.NewFromInt(-500),
				PaymentMethod: types.PaymentMethodCash,
			},
		},
		{
			name: "unknown_method",
			req: &dto.RecordPaymentRequest{
				InvoiceID:     inv.ID,
				Amount:        decimal.NewFromInt(1000),
				PaymentMethod: types.PaymentMethod("crypto"),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.RecordPayment(s.GetContext(), tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *PaymentServiceSuite) TestPaymentUnknownInvoice() {
	_, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     "inv_missing",
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestOverpaymentStillClosesInvoice() {
	inv := s.sentInvoice()

	resp, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(120000),
		PaymentMethod: types.PaymentMethodWave,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
	// The balance never goes negative in responses
	s.True(resp.AmountDue.IsZero())

	// The excess over the 119000 TTC is reported, never swallowed
	s.NotNil(resp.Overpayment)
	s.True(resp.Overpayment.Equal(decimal.NewFromInt(1000)))
}

func (s *PaymentServiceSuite) TestExactPaymentReportsNoOverpayment() {
	inv := s.sentInvoice()

	resp, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(119000),
		PaymentMethod: types.PaymentMethodTransfer,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
	s.Nil(resp.Overpayment)
}

func (s *PaymentServiceSuite) TestListPaymentsByInvoice() {
	first := s.sentInvoice()
	second := s.sentInvoice()

	for _, target := range []string{first.ID, first.ID, second.ID} {
		_, err := s.service.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
			InvoiceID:     target,
			Amount:        decimal.NewFromInt(10000),
			PaymentMethod: types.PaymentMethodCash,
		})
		s.NoError(err)
	}

	filter := types.NewPaymentFilter()
	filter.InvoiceID = first.ID
	resp, err := s.service.ListPayments(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}

func (s *PaymentServiceSuite) TestRecordPaymentPermission() {
	inv := s.sentInvoice()
	ctx := types.SetPermissionTier(s.GetContext(), types.PermissionTierReadOnly)

	_, err := s.service.RecordPayment(ctx, &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: types.PaymentMethodCash,
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
