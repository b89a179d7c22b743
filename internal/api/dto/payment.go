package dto

import (
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/payment"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	InvoiceID     string              `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	PaymentMethod types.PaymentMethod `json:"payment_method" binding:"required"`
	Reference     string              `json:"reference,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r.InvoiceID == "" {
		return ierr.NewError("invoice_id is required").
			WithHint("A payment must target an invoice").
			Mark(ierr.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithHint("Payment amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	return r.PaymentMethod.Validate()
}

// PaymentResponse reports the recorded payment together with the
// invoice status after reconciliation. Overpayment is set when the
// succeeded total passed the invoice total.
type PaymentResponse struct {
	*payment.Payment
	InvoiceStatus types.InvoiceStatus `json:"invoice_status"`
	AmountDue     decimal.Decimal     `json:"amount_due"`
	Overpayment   *decimal.Decimal    `json:"overpayment,omitempty"`
}

type ListPaymentsResponse struct {
	Items      []*PaymentResponse `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}
