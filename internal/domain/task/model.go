package task

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Task is a unit of work assigned to a firm member, optionally tied to
// a matter.
type Task struct {
	ID          string             `db:"id" json:"id"`
	MatterID    string             `db:"matter_id" json:"matter_id"`
	Title       string             `db:"title" json:"title"`
	Description string             `db:"description" json:"description"`
	AssignedTo  string             `db:"assigned_to" json:"assigned_to"`
	TaskStatus  types.TaskStatus   `db:"task_status" json:"task_status"`
	Priority    types.TaskPriority `db:"priority" json:"priority"`
	DueDate     *time.Time         `db:"due_date" json:"due_date,omitempty"`
	CompletedAt *time.Time         `db:"completed_at" json:"completed_at,omitempty"`
	types.BaseModel
}

func NewTask(ctx context.Context, title string) *Task {
	return &Task{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TASK),
		Title:      title,
		TaskStatus: types.TaskStatusPending,
		Priority:   types.TaskPriorityMedium,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}
