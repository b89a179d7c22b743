package invoice

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	// Create persists the invoice and its line items atomically
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	// Update replaces the invoice row and its line items
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int64, error)
	// NextInvoiceNumber allocates the next sequential number for the
	// tenant, e.g. FAC-2026-0042. Must be called inside a transaction.
	NextInvoiceNumber(ctx context.Context) (string, error)
}
