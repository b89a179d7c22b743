package service

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/event"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id string) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, filter *types.EventFilter) (*dto.ListEventsResponse, error)
	UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error
}

type eventService struct {
	ServiceParams
}

func NewEventService(params ServiceParams) EventService {
	return &eventService{ServiceParams: params}
}

func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateEvents); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.MatterRepo.GetByID(ctx, req.MatterID); err != nil {
		return nil, err
	}

	e := req.ToEvent(ctx)
	if err := s.EventRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	return dto.NewEventResponse(e), nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*dto.EventResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewEvents); err != nil {
		return nil, err
	}

	e, err := s.EventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewEventResponse(e), nil
}

func (s *eventService) ListEvents(ctx context.Context, filter *types.EventFilter) (*dto.ListEventsResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewEvents); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewEventFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	events, err := s.EventRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.EventRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListEventsResponse{
		Items: lo.Map(events, func(e *event.Event, _ int) *dto.EventResponse {
			return dto.NewEventResponse(e)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditEvents); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.EventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EventType != nil {
		e.EventType = *req.EventType
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.StartsAt != nil {
		e.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		e.EndsAt = req.EndsAt
	}

	if err := s.EventRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	return dto.NewEventResponse(e), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteEvents); err != nil {
		return err
	}

	if _, err := s.EventRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.EventRepo.Delete(ctx, id)
}
