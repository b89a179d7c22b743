package testutil

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/auth"
)

// InMemoryAuthRepository implements auth.Repository
type InMemoryAuthRepository struct {
	*InMemoryStore[*auth.Auth]
}

// NewInMemoryAuthRepository creates a new in-memory auth repository
func NewInMemoryAuthRepository() *InMemoryAuthRepository {
	return &InMemoryAuthRepository{
		InMemoryStore: NewInMemoryStore[*auth.Auth](),
	}
}

func copyAuth(a *auth.Auth) *auth.Auth {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (s *InMemoryAuthRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	return s.InMemoryStore.Create(ctx, a.UserID, copyAuth(a))
}

func (s *InMemoryAuthRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	a, err := s.InMemoryStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return copyAuth(a), nil
}

func (s *InMemoryAuthRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	return s.InMemoryStore.Update(ctx, a.UserID, copyAuth(a))
}

func (s *InMemoryAuthRepository) DeleteAuth(ctx context.Context, userID string) error {
	return s.InMemoryStore.Delete(ctx, userID)
}
