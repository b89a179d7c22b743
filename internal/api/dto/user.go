package dto

import (
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/user"
	"github.com/jurisflow/jurisflow/internal/types"
)

type UserResponse struct {
	ID               string                 `json:"id"`
	Phone            string                 `json:"phone"`
	Email            string                 `json:"email,omitempty"`
	FullName         string                 `json:"full_name,omitempty"`
	ProfessionalRole types.ProfessionalRole `json:"professional_role,omitempty"`
	PermissionTier   types.PermissionTier   `json:"permission_tier"`
	Disabled         bool                   `json:"disabled"`
	CreatedAt        string                 `json:"created_at"`
	UpdatedAt        string                 `json:"updated_at"`
}

type UpdateUserRequest struct {
	FullName         *string                 `json:"full_name,omitempty"`
	Email            *string                 `json:"email,omitempty" binding:"omitempty,email"`
	ProfessionalRole *types.ProfessionalRole `json:"professional_role,omitempty"`
	PermissionTier   *types.PermissionTier   `json:"permission_tier,omitempty"`
	Disabled         *bool                   `json:"disabled,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.ProfessionalRole != nil {
		if err := r.ProfessionalRole.Validate(); err != nil {
			return err
		}
	}
	if r.PermissionTier != nil {
		if err := r.PermissionTier.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ListUsersResponse struct {
	Items      []*UserResponse    `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:               u.ID,
		Phone:            u.Phone,
		Email:            u.Email,
		FullName:         u.FullName,
		ProfessionalRole: u.ProfessionalRole,
		PermissionTier:   u.PermissionTier,
		Disabled:         u.Disabled,
		CreatedAt:        u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        u.UpdatedAt.Format(time.RFC3339),
	}
}
