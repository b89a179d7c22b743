package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/payment"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

const reconcileMaxRetries = 3

type PaymentService interface {
	// RecordPayment inserts the payment and reconciles the invoice
	// status from the new succeeded total in one transaction.
	RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionRecordPayments); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.PaymentResponse

	// Concurrent payments against the same invoice can conflict on the
	// status update. Retry the whole transaction a few times before
	// reporting a reconciliation conflict.
	operation := func() error {
		var err error
		resp, err = s.recordAndReconcile(ctx, req)
		if err == nil {
			return nil
		}
		if ierr.IsInvoiceClosed(err) || ierr.IsValidation(err) || ierr.IsNotFound(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 50 * time.Millisecond
	policy := backoff.WithMaxRetries(expo, reconcileMaxRetries)

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		if ierr.IsInvoiceClosed(err) || ierr.IsValidation(err) || ierr.IsNotFound(err) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHint("The invoice is being reconciled by another payment, please retry").
			Mark(ierr.ErrReconciliationConflict)
	}

	return resp, nil
}

func (s *paymentService) recordAndReconcile(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	var resp *dto.PaymentResponse

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		inv, err := s.InvoiceRepo.GetByID(txCtx, req.InvoiceID)
		if err != nil {
			return err
		}

		if inv.IsClosed() {
			return ierr.NewError("invoice is closed").
				WithHint("Payments cannot be recorded against a paid or cancelled invoice").
				WithReportableDetails(map[string]any{
					"invoice_id":     inv.ID,
					"invoice_status": inv.InvoiceStatus,
				}).
				Mark(ierr.ErrInvoiceClosed)
		}

		p := payment.NewPayment(txCtx, inv.ID, req.Amount, req.PaymentMethod)
		p.Reference = req.Reference
		p.Notes = req.Notes
		if req.PaidAt != nil {
			p.PaidAt = *req.PaidAt
		}

		if err := s.PaymentRepo.Create(txCtx, p); err != nil {
			return err
		}

		total, err := s.PaymentRepo.SumSucceededByInvoice(txCtx, inv.ID)
		if err != nil {
			return err
		}

		inv.AmountPaid = total
		switch {
		case total.GreaterThanOrEqual(inv.TotalTTC):
			inv.InvoiceStatus = types.InvoiceStatusPaid
			inv.PaidAt = lo.ToPtr(time.Now().UTC())
		case total.IsPositive():
			// Partially paid invoices stay issued until settled
			inv.InvoiceStatus = types.InvoiceStatusSent
		}

		if err := s.InvoiceRepo.Update(txCtx, inv); err != nil {
			return err
		}

		resp = &dto.PaymentResponse{
			Payment:       p,
			InvoiceStatus: inv.InvoiceStatus,
			AmountDue:     dto.NewInvoiceResponse(inv).AmountDue,
		}

		// Payments past the invoice total close it but never silently:
		// the excess is surfaced to the caller and in the logs so the
		// firm can refund or credit it.
		if total.GreaterThan(inv.TotalTTC) {
			overpaid := total.Sub(inv.TotalTTC)
			resp.Overpayment = &overpaid
			s.Logger.Warnw("payments exceed invoice total",
				"invoice_id", inv.ID,
				"invoice_number", inv.InvoiceNumber,
				"total_ttc", inv.TotalTTC,
				"amount_paid", total,
				"overpayment", overpaid,
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewInvoices); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.GetByID(ctx, p.InvoiceID)
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		Payment:       p,
		InvoiceStatus: inv.InvoiceStatus,
		AmountDue:     dto.NewInvoiceResponse(inv).AmountDue,
	}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewInvoices); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, &dto.PaymentResponse{Payment: p})
	}

	return &dto.ListPaymentsResponse{
		Items:      items,
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}
