package service

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/notaryact"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

// NotaryActService manages the firm's notarial register under the
// matter permissions.
type NotaryActService interface {
	CreateAct(ctx context.Context, req *dto.CreateNotaryActRequest) (*dto.NotaryActResponse, error)
	GetAct(ctx context.Context, id string) (*dto.NotaryActResponse, error)
	ListActs(ctx context.Context, filter *types.NotaryActFilter) (*dto.ListNotaryActsResponse, error)
	UpdateAct(ctx context.Context, id string, req *dto.UpdateNotaryActRequest) (*dto.NotaryActResponse, error)
	DeleteAct(ctx context.Context, id string) error
}

type notaryActService struct {
	ServiceParams
}

func NewNotaryActService(params ServiceParams) NotaryActService {
	return &notaryActService{ServiceParams: params}
}

func (s *notaryActService) CreateAct(ctx context.Context, req *dto.CreateNotaryActRequest) (*dto.NotaryActResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateMatters); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MatterID != "" {
		if _, err := s.MatterRepo.GetByID(ctx, req.MatterID); err != nil {
			return nil, err
		}
	}
	if req.ClientID != "" {
		if _, err := s.ClientRepo.GetByID(ctx, req.ClientID); err != nil {
			return nil, err
		}
	}

	a := req.ToAct(ctx)
	if req.Signed {
		a.Signed = true
		a.SignedAt = lo.ToPtr(time.Now().UTC())
	}

	if err := s.NotaryActRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	return dto.NewNotaryActResponse(a), nil
}

func (s *notaryActService) GetAct(ctx context.Context, id string) (*dto.NotaryActResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewMatters); err != nil {
		return nil, err
	}

	a, err := s.NotaryActRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewNotaryActResponse(a), nil
}

func (s *notaryActService) ListActs(ctx context.Context, filter *types.NotaryActFilter) (*dto.ListNotaryActsResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewMatters); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewNotaryActFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	acts, err := s.NotaryActRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.NotaryActRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListNotaryActsResponse{
		Items: lo.Map(acts, func(a *notaryact.Act, _ int) *dto.NotaryActResponse {
			return dto.NewNotaryActResponse(a)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *notaryActService) UpdateAct(ctx context.Context, id string, req *dto.UpdateNotaryActRequest) (*dto.NotaryActResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditMatters); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.NotaryActRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ActType != nil {
		a.ActType = *req.ActType
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.ActNumber != nil {
		a.ActNumber = *req.ActNumber
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.ActDate != nil {
		a.ActDate = *req.ActDate
	}
	if req.NotaryFees != nil {
		a.NotaryFees = *req.NotaryFees
	}
	if req.TaxAmount != nil {
		a.TaxAmount = *req.TaxAmount
	}
	if req.Signed != nil {
		switch {
		case *req.Signed && !a.Signed:
			a.Signed = true
			a.SignedAt = lo.ToPtr(time.Now().UTC())
		case !*req.Signed:
			a.Signed = false
			a.SignedAt = nil
		}
	}

	if err := s.NotaryActRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	return dto.NewNotaryActResponse(a), nil
}

func (s *notaryActService) DeleteAct(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteMatters); err != nil {
		return err
	}

	if _, err := s.NotaryActRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.NotaryActRepo.Delete(ctx, id)
}
