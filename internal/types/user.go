package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// ProfessionalRole identifies the legal profession a practitioner
// exercises. It drives which matter fields are mandatory.
type ProfessionalRole string

const (
	ProfessionalRoleLawyer  ProfessionalRole = "lawyer"
	ProfessionalRoleBailiff ProfessionalRole = "bailiff"
	ProfessionalRoleNotary  ProfessionalRole = "notary"
)

func (r ProfessionalRole) String() string {
	return string(r)
}

func (r ProfessionalRole) Validate() error {
	allowed := []ProfessionalRole{
		ProfessionalRoleLawyer,
		ProfessionalRoleBailiff,
		ProfessionalRoleNotary,
	}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid professional role").
			WithHint("Invalid professional role").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PermissionTier is the access level of a user inside a firm.
// Tiers are tenant-local; the same user holds exactly one tier per firm.
type PermissionTier string

const (
	PermissionTierAdmin        PermissionTier = "admin"
	PermissionTierPartner      PermissionTier = "partner"
	PermissionTierAssociate    PermissionTier = "associate"
	PermissionTierFrontDesk    PermissionTier = "front_desk"
	PermissionTierReadOnly     PermissionTier = "read_only"
	PermissionTierClientPortal PermissionTier = "client_portal"
)

func (t PermissionTier) String() string {
	return string(t)
}

func (t PermissionTier) Validate() error {
	allowed := []PermissionTier{
		PermissionTierAdmin,
		PermissionTierPartner,
		PermissionTierAssociate,
		PermissionTierFrontDesk,
		PermissionTierReadOnly,
		PermissionTierClientPortal,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid permission tier").
			WithHint("Invalid permission tier").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
