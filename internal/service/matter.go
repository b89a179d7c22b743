package service

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/matter"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

type MatterService interface {
	CreateMatter(ctx context.Context, req *dto.CreateMatterRequest) (*dto.MatterResponse, error)
	GetMatter(ctx context.Context, id string) (*dto.MatterResponse, error)
	ListMatters(ctx context.Context, filter *types.MatterFilter) (*dto.ListMattersResponse, error)
	UpdateMatter(ctx context.Context, id string, req *dto.UpdateMatterRequest) (*dto.MatterResponse, error)
	DeleteMatter(ctx context.Context, id string) error
}

type matterService struct {
	ServiceParams
}

func NewMatterService(params ServiceParams) MatterService {
	return &matterService{ServiceParams: params}
}

func (s *matterService) CreateMatter(ctx context.Context, req *dto.CreateMatterRequest) (*dto.MatterResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateMatters); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The client must exist within the caller's firm
	if _, err := s.ClientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	m := req.ToMatter(ctx)

	warnings, err := s.validateForRole(ctx, m)
	if err != nil {
		return nil, err
	}

	if err := s.MatterRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return dto.NewMatterResponse(m, warnings...), nil
}

// validateForRole applies the professional role rules of the caller.
// Lawyers must name a jurisdiction, which blocks creation. Bailiffs
// should record the service date, but its absence only raises a
// warning since the act may not have been served yet.
func (s *matterService) validateForRole(ctx context.Context, m *matter.Matter) ([]string, error) {
	u, err := s.UserRepo.GetByID(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	var warnings []string
	switch u.ProfessionalRole {
	case types.ProfessionalRoleLawyer:
		if m.Jurisdiction == "" {
			return nil, ierr.NewError("jurisdiction is required").
				WithHint("A lawyer's matter must name its jurisdiction").
				Mark(ierr.ErrValidation)
		}
	case types.ProfessionalRoleBailiff:
		if m.ServiceDate == nil {
			warnings = append(warnings, "service date not recorded yet")
		}
	}
	return warnings, nil
}

func (s *matterService) GetMatter(ctx context.Context, id string) (*dto.MatterResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewMatters); err != nil {
		return nil, err
	}

	m, err := s.MatterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewMatterResponse(m), nil
}

func (s *matterService) ListMatters(ctx context.Context, filter *types.MatterFilter) (*dto.ListMattersResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewMatters); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewMatterFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.Search != "" {
		if err := s.Limiter.Allow(ctx, types.GetUserID(ctx), types.RateLimitCategorySearch); err != nil {
			return nil, err
		}
	}

	matters, err := s.MatterRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.MatterRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListMattersResponse{
		Items: lo.Map(matters, func(m *matter.Matter, _ int) *dto.MatterResponse {
			return dto.NewMatterResponse(m)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *matterService) UpdateMatter(ctx context.Context, id string, req *dto.UpdateMatterRequest) (*dto.MatterResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditMatters); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.MatterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.AssignedTo != nil {
		m.AssignedTo = *req.AssignedTo
	}
	if req.Jurisdiction != nil {
		m.Jurisdiction = *req.Jurisdiction
	}
	if req.CourtName != nil {
		m.CourtName = *req.CourtName
	}
	if req.OpposingParty != nil {
		m.OpposingParty = *req.OpposingParty
	}
	if req.ServiceDate != nil {
		m.ServiceDate = req.ServiceDate
	}
	if req.Metadata != nil {
		m.Metadata = *req.Metadata
	}
	if req.MatterStatus != nil && *req.MatterStatus != m.MatterStatus {
		m.MatterStatus = *req.MatterStatus
		if m.MatterStatus == types.MatterStatusClosed {
			m.ClosedAt = lo.ToPtr(time.Now().UTC())
		} else {
			m.ClosedAt = nil
		}
	}

	warnings, err := s.validateForRole(ctx, m)
	if err != nil {
		return nil, err
	}

	if err := s.MatterRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	return dto.NewMatterResponse(m, warnings...), nil
}

func (s *matterService) DeleteMatter(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteMatters); err != nil {
		return err
	}

	if _, err := s.MatterRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.MatterRepo.Delete(ctx, id)
}
