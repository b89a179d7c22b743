package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// TaskStatus is the completion state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) String() string {
	return string(s)
}

func (s TaskStatus) Validate() error {
	allowed := []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusDone,
		TaskStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid task status").
			WithHint("Invalid task status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TaskPriority orders tasks in work queues
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) String() string {
	return string(p)
}

func (p TaskPriority) Validate() error {
	allowed := []TaskPriority{
		TaskPriorityLow,
		TaskPriorityMedium,
		TaskPriorityHigh,
		TaskPriorityUrgent,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid task priority").
			WithHint("Invalid task priority").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TaskFilter represents filters for task queries
type TaskFilter struct {
	*QueryFilter
	*TimeRangeFilter

	TaskIDs    []string     `json:"task_ids,omitempty" form:"task_ids"`
	MatterID   string       `json:"matter_id,omitempty" form:"matter_id"`
	AssignedTo string       `json:"assigned_to,omitempty" form:"assigned_to"`
	TaskStatus TaskStatus   `json:"task_status,omitempty" form:"task_status"`
	Priority   TaskPriority `json:"priority,omitempty" form:"priority"`
}

// NewTaskFilter creates a new task filter with default options
func NewTaskFilter() *TaskFilter {
	return &TaskFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitTaskFilter creates a new task filter without pagination
func NewNoLimitTaskFilter() *TaskFilter {
	return &TaskFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the task filter
func (f TaskFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TaskStatus != "" {
		if err := f.TaskStatus.Validate(); err != nil {
			return err
		}
	}
	if f.Priority != "" {
		if err := f.Priority.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *TaskFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *TaskFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *TaskFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *TaskFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *TaskFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *TaskFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
