package service

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/cache"
	"github.com/jurisflow/jurisflow/internal/domain/permission"
	"github.com/jurisflow/jurisflow/internal/domain/user"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/rbac"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

type UserService interface {
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// GetPermissionMatrix returns the firm's tier to grant mapping
	GetPermissionMatrix(ctx context.Context) (*dto.PermissionMatrixResponse, error)
	// UpdatePermissionMatrix replaces the grants of one tier
	UpdatePermissionMatrix(ctx context.Context, req *dto.UpdatePermissionMatrixRequest) (*dto.PermissionMatrixResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	// Anyone can read their own profile; reading others requires the
	// user management grant
	if id != types.GetUserID(ctx) {
		if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionManageUsers); err != nil {
			return nil, err
		}
	}

	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponse(u), nil
}

func (s *userService) ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionManageUsers); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewUserFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListUsersResponse{
		Items: lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
			return dto.NewUserResponse(u)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	managing := id != types.GetUserID(ctx) || req.PermissionTier != nil || req.Disabled != nil
	if managing {
		if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionManageUsers); err != nil {
			return nil, err
		}
	}

	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.ProfessionalRole != nil {
		u.ProfessionalRole = *req.ProfessionalRole
	}
	if req.PermissionTier != nil {
		if !s.RBAC.ValidateTier(*req.PermissionTier) {
			return nil, ierr.NewError("unknown permission tier").
				WithHint("Unknown permission tier").
				Mark(ierr.ErrValidation)
		}
		u.PermissionTier = *req.PermissionTier
	}
	if req.Disabled != nil {
		if *req.Disabled && id == types.GetUserID(ctx) {
			return nil, ierr.NewError("cannot disable own account").
				WithHint("You cannot disable your own account").
				Mark(ierr.ErrInvalidOperation)
		}
		u.Disabled = *req.Disabled
	}

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	// Drop the cached session so tier and disabled changes apply on the
	// next request
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixUser, "auth", u.AuthID))

	return dto.NewUserResponse(u), nil
}

func (s *userService) GetPermissionMatrix(ctx context.Context) (*dto.PermissionMatrixResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionManageUsers); err != nil {
		return nil, err
	}

	rules, err := s.PermissionRepo.ListByTenant(ctx)
	if err != nil {
		return nil, err
	}

	// Firms created before matrix storage existed have no rows and run
	// on the shipped defaults
	if len(rules) == 0 {
		return &dto.PermissionMatrixResponse{Matrix: rbac.DefaultGrants()}, nil
	}

	matrix := make(map[types.PermissionTier][]types.Permission)
	for _, r := range rules {
		matrix[r.Tier] = append(matrix[r.Tier], r.Permission)
	}
	return &dto.PermissionMatrixResponse{Matrix: matrix}, nil
}

func (s *userService) UpdatePermissionMatrix(ctx context.Context, req *dto.UpdatePermissionMatrixRequest) (*dto.PermissionMatrixResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionManageUsers); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The first edit of a firm still running on the shipped defaults
	// materializes them, so the untouched tiers keep their grants
	existing, err := s.PermissionRepo.ListByTenant(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		seed := make([]*permission.Rule, 0)
		for tier, grants := range rbac.DefaultGrants() {
			for _, p := range grants {
				seed = append(seed, permission.NewRule(ctx, tier, p))
			}
		}
		if err := s.PermissionRepo.CreateBulk(ctx, seed); err != nil {
			return nil, err
		}
	}

	if err := s.PermissionRepo.ReplaceTier(ctx, req.Tier, req.Permissions); err != nil {
		return nil, err
	}

	// Drop the cached matrix so the edit governs the next request
	s.RBAC.InvalidateTenant(ctx)

	return s.GetPermissionMatrix(ctx)
}
