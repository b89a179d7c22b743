package payment

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	ListByFilter(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int64, error)
	// SumSucceededByInvoice returns the total of all succeeded payments
	// recorded against the invoice. Failed payments never count.
	SumSucceededByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}
