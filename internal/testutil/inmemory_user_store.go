package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
	upsertMu sync.Mutex
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

// GetByAuthID is not tenant scoped; it runs during session resolution.
// A missing row carries the profile specific mark so callers can tell
// "valid token, no profile" apart from an ordinary lookup miss.
func (s *InMemoryUserStore) GetByAuthID(ctx context.Context, authID string) (*user.User, error) {
	matchFn := func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.AuthID == authID
	}
	users, err := s.InMemoryStore.List(ctx, nil, matchFn, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("profile not found").
			WithHint("No profile exists for this account").
			Mark(ierr.ErrProfileNotFound)
	}
	return copyUser(users[0]), nil
}

func (s *InMemoryUserStore) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	matchFn := func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.Phone == phone
	}
	return s.findOne(ctx, matchFn)
}

func (s *InMemoryUserStore) findOne(ctx context.Context, matchFn FilterFunc[*user.User]) (*user.User, error) {
	users, err := s.InMemoryStore.List(ctx, nil, matchFn, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("user not found").
			WithHint("The requested resource was not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(users[0]), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) ListByFilter(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	items, err := s.InMemoryStore.List(ctx, filter, userFilterFn, userSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(u *user.User, _ int) *user.User {
		return copyUser(u)
	}), nil
}

func (s *InMemoryUserStore) Count(ctx context.Context, filter *types.UserFilter) (int64, error) {
	count, err := s.InMemoryStore.Count(ctx, filter, userFilterFn)
	return int64(count), err
}

// UpsertByPhone mirrors the conflict-free insert used by onboarding:
// concurrent calls for the same phone all resolve to one profile.
func (s *InMemoryUserStore) UpsertByPhone(ctx context.Context, u *user.User) (*user.User, error) {
	s.upsertMu.Lock()
	defer s.upsertMu.Unlock()

	existing, err := s.GetByPhone(ctx, u.Phone)
	if err == nil {
		return existing, nil
	}

	if err := s.InMemoryStore.Create(ctx, u.ID, copyUser(u)); err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func userFilterFn(ctx context.Context, u *user.User, filter interface{}) bool {
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && u.TenantID != tenantID {
		return false
	}
	if u.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.UserFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.UserIDs) > 0 && !lo.Contains(f.UserIDs, u.ID) {
		return false
	}
	if f.PermissionTier != "" && u.PermissionTier != f.PermissionTier {
		return false
	}
	if f.ProfessionalRole != "" && u.ProfessionalRole != f.ProfessionalRole {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(u.FullName), needle) &&
			!strings.Contains(strings.ToLower(u.Phone), needle) {
			return false
		}
	}
	return true
}

func userSortFn(i, j *user.User) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
