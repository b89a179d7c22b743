package permission

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Rule is one cell of a firm's permission matrix: the named tier holds
// the named permission. Absence of a row means the permission is
// denied, so the matrix fails closed by construction.
type Rule struct {
	ID         string               `db:"id" json:"id"`
	Tier       types.PermissionTier `db:"tier" json:"tier"`
	Permission types.Permission     `db:"permission" json:"permission"`
	types.BaseModel
}

func NewRule(ctx context.Context, tier types.PermissionTier, permission types.Permission) *Rule {
	return &Rule{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PERMISSION_RULE),
		Tier:       tier,
		Permission: permission,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}
