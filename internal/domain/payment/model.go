package payment

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

// Payment is an amount received against an invoice. Rows are append
// only; a failed payment stays on record with its failure status.
type Payment struct {
	ID            string              `db:"id" json:"id"`
	InvoiceID     string              `db:"invoice_id" json:"invoice_id"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	PaymentMethod types.PaymentMethod `db:"payment_method" json:"payment_method"`
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`
	Reference     string              `db:"reference" json:"reference"`
	PaidAt        time.Time           `db:"paid_at" json:"paid_at"`
	Notes         string              `db:"notes" json:"notes"`
	types.BaseModel
}

func NewPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, method types.PaymentMethod) *Payment {
	return &Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		InvoiceID:     invoiceID,
		Amount:        amount,
		PaymentMethod: method,
		PaymentStatus: types.PaymentStatusSucceeded,
		PaidAt:        time.Now().UTC(),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}
