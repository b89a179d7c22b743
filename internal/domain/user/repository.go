package user

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByAuthID resolves the profile for an identity provider subject.
	// It is deliberately not tenant scoped: session resolution runs
	// before any tenant context exists.
	GetByAuthID(ctx context.Context, authID string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, user *User) error
	ListByFilter(ctx context.Context, filter *types.UserFilter) ([]*User, error)
	Count(ctx context.Context, filter *types.UserFilter) (int64, error)
	// UpsertByPhone atomically creates the profile for a verified phone
	// or returns the existing one. Used by onboarding so that concurrent
	// first logins cannot create duplicate profiles.
	UpsertByPhone(ctx context.Context, user *User) (*User, error)
}
