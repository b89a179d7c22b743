package service

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/types"
)

type ClientService interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, filter *types.ClientFilter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{ServiceParams: params}
}

func (s *clientService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateClients); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)
	if c.Phone != "" {
		phone, err := types.FormatPhoneE164(c.Phone)
		if err != nil {
			return nil, err
		}
		c.Phone = phone
	}

	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewClients); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) ListClients(ctx context.Context, filter *types.ClientFilter) (*dto.ListClientsResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewClients); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewClientFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.Search != "" {
		if err := s.Limiter.Allow(ctx, types.GetUserID(ctx), types.RateLimitCategorySearch); err != nil {
			return nil, err
		}
	}

	clients, err := s.ClientRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.ClientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, dto.NewClientResponse(c))
	}

	return &dto.ListClientsResponse{
		Items:      items,
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditClients); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.CompanyName != nil {
		c.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		if *req.Phone != "" {
			phone, err := types.FormatPhoneE164(*req.Phone)
			if err != nil {
				return nil, err
			}
			c.Phone = phone
		} else {
			c.Phone = ""
		}
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Metadata != nil {
		c.Metadata = *req.Metadata
	}

	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteClients); err != nil {
		return err
	}

	if _, err := s.ClientRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.ClientRepo.Delete(ctx, id)
}
