package service

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/types"
)

type TenantService interface {
	// GetTenant returns the caller's firm
	GetTenant(ctx context.Context) (*dto.TenantResponse, error)
	UpdateTenant(ctx context.Context, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error)
}

type tenantService struct {
	ServiceParams
}

func NewTenantService(params ServiceParams) TenantService {
	return &tenantService{ServiceParams: params}
}

func (s *tenantService) GetTenant(ctx context.Context) (*dto.TenantResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewTenantResponse(t), nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionManageSettings); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone != "" {
			phone, err := types.FormatPhoneE164(*req.Phone)
			if err != nil {
				return nil, err
			}
			t.Phone = phone
		} else {
			t.Phone = ""
		}
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Address != nil {
		t.Address = *req.Address
	}
	if req.City != nil {
		t.City = *req.City
	}
	if req.TVARate != nil {
		t.TVARate = *req.TVARate
	}

	if err := s.TenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	return dto.NewTenantResponse(t), nil
}
