package user

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

// User is a firm member profile. AuthID links the profile to the
// identity provider subject; Phone is the canonical E.164 number the
// user verified during onboarding.
type User struct {
	ID               string                 `db:"id" json:"id"`
	AuthID           string                 `db:"auth_id" json:"auth_id"`
	Phone            string                 `db:"phone" json:"phone"`
	Email            string                 `db:"email" json:"email"`
	FullName         string                 `db:"full_name" json:"full_name"`
	ProfessionalRole types.ProfessionalRole `db:"professional_role" json:"professional_role"`
	PermissionTier   types.PermissionTier   `db:"permission_tier" json:"permission_tier"`
	Disabled         bool                   `db:"disabled" json:"disabled"`
	types.BaseModel
}

func NewUser(ctx context.Context, authID, phone string) *User {
	return &User{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROFILE),
		AuthID:         authID,
		Phone:          phone,
		PermissionTier: types.PermissionTierAssociate,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// IsAdmin reports whether the user bypasses permission checks
func (u *User) IsAdmin() bool {
	return u.PermissionTier == types.PermissionTierAdmin
}
