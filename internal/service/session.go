package service

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

const sessionCacheExpiry = 5 * time.Minute

// SessionService resolves a validated token subject into a full
// request context: profile, firm and permission tier.
type SessionService interface {
	// ResolveSession loads the profile for the identity provider subject
	// and returns a context carrying tenant id, user id and tier.
	ResolveSession(ctx context.Context, authID string) (context.Context, *user.User, error)
	// GetSession returns the session payload for the current caller
	GetSession(ctx context.Context) (*dto.SessionResponse, error)
}

type sessionService struct {
	ServiceParams
}

func NewSessionService(params ServiceParams) SessionService {
	return &sessionService{ServiceParams: params}
}

func (s *sessionService) ResolveSession(ctx context.Context, authID string) (context.Context, *user.User, error) {
	if authID == "" {
		return ctx, nil, ierr.NewError("missing auth subject").
			WithHint("Authentication required").
			Mark(ierr.ErrNotAuthenticated)
	}

	u, err := s.lookupProfile(ctx, authID)
	if err != nil {
		return ctx, nil, err
	}

	if u.Disabled {
		return ctx, nil, ierr.NewError("account disabled").
			WithHint("Your account has been disabled, contact your firm administrator").
			Mark(ierr.ErrAccountDisabled)
	}

	ctx = types.SetTenantID(ctx, u.TenantID)
	ctx = types.SetUserID(ctx, u.ID)
	ctx = types.SetPermissionTier(ctx, u.PermissionTier)
	return ctx, u, nil
}

func (s *sessionService) GetSession(ctx context.Context) (*dto.SessionResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("not authenticated").
			WithHint("Authentication required").
			Mark(ierr.ErrNotAuthenticated)
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewSessionResponse(u, s.RBAC.PermissionsForTier(ctx, u.PermissionTier)), nil
}

// lookupProfile resolves the auth subject to a profile, consulting the
// cache first. Disabled is re-checked by the caller on every request so
// a disable takes effect within the cache window only for new lookups;
// the cache entry is dropped when the profile is updated.
func (s *sessionService) lookupProfile(ctx context.Context, authID string) (*user.User, error) {
	cacheKey := cache.GenerateKey(cache.PrefixUser, "auth", authID)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if u, ok := cached.(*user.User); ok {
			return u, nil
		}
	}

	u, err := s.UserRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, cacheKey, u, sessionCacheExpiry)
	return u, nil
}
