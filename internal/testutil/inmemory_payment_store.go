package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/payment"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

// NewInMemoryPaymentStore creates a new in-memory payment store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyPayment(p))
}

func (s *InMemoryPaymentStore) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) ListByFilter(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	items, err := s.InMemoryStore.List(ctx, filter, paymentFilterFn, paymentSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, paymentFilterFn)
	return int64(count), err
}

func (s *InMemoryPaymentStore) SumSucceededByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	matchFn := func(ctx context.Context, p *payment.Payment, _ interface{}) bool {
		return p.InvoiceID == invoiceID &&
			p.TenantID == types.GetTenantID(ctx) &&
			p.PaymentStatus == types.PaymentStatusSucceeded
	}
	payments, err := s.InMemoryStore.List(ctx, nil, matchFn, nil)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func paymentFilterFn(ctx context.Context, p *payment.Payment, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && p.TenantID != tenantID {
		return false
	}

	f, ok := filter.(*types.PaymentFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.PaymentIDs) > 0 && !lo.Contains(f.PaymentIDs, p.ID) {
		return false
	}
	if f.InvoiceID != "" && p.InvoiceID != f.InvoiceID {
		return false
	}
	if f.PaymentMethod != "" && p.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.PaymentStatus != "" && p.PaymentStatus != f.PaymentStatus {
		return false
	}
	return true
}

func paymentSortFn(i, j *payment.Payment) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
