package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/invoice"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
	counterMu sync.Mutex
	counters  map[string]int
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
		counters:      make(map[string]int),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.LineItems = lo.Map(inv.LineItems, func(line *invoice.LineItem, _ int) *invoice.LineItem {
		l := *line
		return &l
	})
	return &cp
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	matchFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.InvoiceNumber == invoiceNumber && inv.TenantID == types.GetTenantID(ctx)
	}
	invoices, err := s.InMemoryStore.List(ctx, nil, matchFn, nil)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ierr.NewError("invoice not found").
			WithHint("The requested resource was not found").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(invoices[0]), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryInvoiceStore) ListByFilter(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
	return int64(count), err
}

// NextInvoiceNumber allocates per tenant per year sequential numbers,
// matching the FAC-YYYY-NNNN format of the SQL implementation.
func (s *InMemoryInvoiceStore) NextInvoiceNumber(ctx context.Context) (string, error) {
	s.counterMu.Lock()
	defer s.counterMu.Unlock()

	year := time.Now().UTC().Year()
	key := fmt.Sprintf("%s:%d", types.GetTenantID(ctx), year)
	s.counters[key]++
	return fmt.Sprintf("FAC-%d-%04d", year, s.counters[key]), nil
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && inv.TenantID != tenantID {
		return false
	}
	if inv.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.InvoiceIDs) > 0 && !lo.Contains(f.InvoiceIDs, inv.ID) {
		return false
	}
	if f.ClientID != "" && inv.ClientID != f.ClientID {
		return false
	}
	if f.MatterID != "" && inv.MatterID != f.MatterID {
		return false
	}
	if f.InvoiceStatus != "" && inv.InvoiceStatus != f.InvoiceStatus {
		return false
	}
	if f.InvoiceNumber != "" && inv.InvoiceNumber != f.InvoiceNumber {
		return false
	}
	if f.TimeRangeFilter != nil {
		if f.StartTime != nil && inv.CreatedAt.Before(*f.StartTime) {
			return false
		}
		if f.EndTime != nil && inv.CreatedAt.After(*f.EndTime) {
			return false
		}
	}
	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
