package testutil

import (
	"context"
	"strings"

	"github.com/jurisflow/jurisflow/internal/domain/document"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryDocumentStore implements document.Repository
type InMemoryDocumentStore struct {
	*InMemoryStore[*document.Document]
}

// NewInMemoryDocumentStore creates a new in-memory document store
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		InMemoryStore: NewInMemoryStore[*document.Document](),
	}
}

func copyDocument(d *document.Document) *document.Document {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}

func (s *InMemoryDocumentStore) Create(ctx context.Context, d *document.Document) error {
	return s.InMemoryStore.Create(ctx, d.ID, copyDocument(d))
}

func (s *InMemoryDocumentStore) GetByID(ctx context.Context, id string) (*document.Document, error) {
	d, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyDocument(d), nil
}

func (s *InMemoryDocumentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryDocumentStore) ListByFilter(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	items, err := s.InMemoryStore.List(ctx, filter, documentFilterFn, documentSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(d *document.Document, _ int) *document.Document {
		return copyDocument(d)
	}), nil
}

func (s *InMemoryDocumentStore) Count(ctx context.Context, filter *types.DocumentFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, documentFilterFn)
	return int64(count), err
}

func documentFilterFn(ctx context.Context, d *document.Document, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && d.TenantID != tenantID {
		return false
	}
	if d.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.DocumentFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.DocumentIDs) > 0 && !lo.Contains(f.DocumentIDs, d.ID) {
		return false
	}
	if f.MatterID != "" && d.MatterID != f.MatterID {
		return false
	}
	if f.ClientID != "" && d.ClientID != f.ClientID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(d.FileName), needle) {
			return false
		}
	}
	return true
}

func documentSortFn(i, j *document.Document) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
