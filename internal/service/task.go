package service

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/task"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

type TaskService interface {
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, id string) (*dto.TaskResponse, error)
	ListTasks(ctx context.Context, filter *types.TaskFilter) (*dto.ListTasksResponse, error)
	UpdateTask(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
}

type taskService struct {
	ServiceParams
}

func NewTaskService(params ServiceParams) TaskService {
	return &taskService{ServiceParams: params}
}

func (s *taskService) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateTasks); err != nil {
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

	t := req.ToTask(ctx)
	if err := s.TaskRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	return dto.NewTaskResponse(t), nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewTasks); err != nil {
		return nil, err
	}

	t, err := s.TaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewTaskResponse(t), nil
}

func (s *taskService) ListTasks(ctx context.Context, filter *types.TaskFilter) (*dto.ListTasksResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewTasks); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewTaskFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.TaskRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.TaskRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListTasksResponse{
		Items: lo.Map(tasks, func(t *task.Task, _ int) *dto.TaskResponse {
			return dto.NewTaskResponse(t)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditTasks); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.TaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.TaskStatus != nil && *req.TaskStatus != t.TaskStatus {
		t.TaskStatus = *req.TaskStatus
		if t.TaskStatus == types.TaskStatusDone {
			t.CompletedAt = lo.ToPtr(time.Now().UTC())
		} else {
			t.CompletedAt = nil
		}
	}

	if err := s.TaskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	return dto.NewTaskResponse(t), nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteTasks); err != nil {
		return err
	}

	if _, err := s.TaskRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.TaskRepo.Delete(ctx, id)
}
