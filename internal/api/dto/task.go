package dto

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/task"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

type CreateTaskRequest struct {
	MatterID    string              `json:"matter_id,omitempty"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	AssignedTo  string              `json:"assigned_to,omitempty"`
	Priority    *types.TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	if r.Title == "" {
		return ierr.NewError("title is required").
			WithHint("Task title is required").
			Mark(ierr.ErrValidation)
	}
	if r.Priority != nil {
		return r.Priority.Validate()
	}
	return nil
}

func (r *CreateTaskRequest) ToTask(ctx context.Context) *task.Task {
	t := task.NewTask(ctx, r.Title)
	t.MatterID = r.MatterID
	t.Description = r.Description
	t.AssignedTo = r.AssignedTo
	t.DueDate = r.DueDate
	if r.Priority != nil {
		t.Priority = *r.Priority
	}
	return t
}

type UpdateTaskRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	AssignedTo  *string             `json:"assigned_to,omitempty"`
	TaskStatus  *types.TaskStatus   `json:"task_status,omitempty"`
	Priority    *types.TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return ierr.NewError("title cannot be empty").
			WithHint("Task title cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if r.TaskStatus != nil {
		if err := r.TaskStatus.Validate(); err != nil {
			return err
		}
	}
	if r.Priority != nil {
		return r.Priority.Validate()
	}
	return nil
}

type TaskResponse struct {
	*task.Task
}

type ListTasksResponse struct {
	Items      []*TaskResponse    `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewTaskResponse(t *task.Task) *TaskResponse {
	return &TaskResponse{Task: t}
}
