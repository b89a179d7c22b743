package dto

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

// PermissionMatrixResponse is the firm's full tier to grant mapping
type PermissionMatrixResponse struct {
	Matrix map[types.PermissionTier][]types.Permission `json:"matrix"`
}

// UpdatePermissionMatrixRequest replaces the grants of one tier
type UpdatePermissionMatrixRequest struct {
	Tier        types.PermissionTier `json:"tier" binding:"required"`
	Permissions []types.Permission   `json:"permissions"`
}

func (r *UpdatePermissionMatrixRequest) Validate() error {
	if err := r.Tier.Validate(); err != nil {
		return err
	}
	if r.Tier == types.PermissionTierAdmin {
		return ierr.NewError("admin tier is not editable").
			WithHint("The admin tier always holds every permission").
			Mark(ierr.ErrValidation)
	}
	seen := make(map[types.Permission]bool, len(r.Permissions))
	for _, p := range r.Permissions {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p] {
			return ierr.NewError("duplicate permission").
				WithHint("Each permission may appear at most once").
				WithReportableDetails(map[string]any{
					"permission": p,
				}).
				Mark(ierr.ErrValidation)
		}
		seen[p] = true
	}
	return nil
}
