package dto

import (
	"github.com/jurisflow/jurisflow/internal/domain/user"
	"github.com/jurisflow/jurisflow/internal/types"
)

// SessionResponse describes the resolved caller: who they are, which
// firm they belong to and what they are allowed to do.
type SessionResponse struct {
	UserID           string                 `json:"user_id"`
	TenantID         string                 `json:"tenant_id"`
	Phone            string                 `json:"phone"`
	Email            string                 `json:"email,omitempty"`
	FullName         string                 `json:"full_name,omitempty"`
	ProfessionalRole types.ProfessionalRole `json:"professional_role,omitempty"`
	PermissionTier   types.PermissionTier   `json:"permission_tier"`
	Permissions      []types.Permission     `json:"permissions"`
}

func NewSessionResponse(u *user.User, permissions []types.Permission) *SessionResponse {
	return &SessionResponse{
		UserID:           u.ID,
		TenantID:         u.TenantID,
		Phone:            u.Phone,
		Email:            u.Email,
		FullName:         u.FullName,
		ProfessionalRole: u.ProfessionalRole,
		PermissionTier:   u.PermissionTier,
		Permissions:      permissions,
	}
}
