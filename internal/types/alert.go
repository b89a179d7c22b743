package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// AlertType classifies generated alerts
type AlertType string

const (
	AlertTypeHearingReminder  AlertType = "hearing_reminder"
	AlertTypeDeadlineReminder AlertType = "deadline_reminder"
	AlertTypeInvoiceOverdue   AlertType = "invoice_overdue"
	AlertTypeTaskDue          AlertType = "task_due"
)

func (t AlertType) String() string {
	return string(t)
}

func (t AlertType) Validate() error {
	allowed := []AlertType{
		AlertTypeHearingReminder,
		AlertTypeDeadlineReminder,
		AlertTypeInvoiceOverdue,
		AlertTypeTaskDue,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid alert type").
			WithHint("Invalid alert type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AlertFilter represents filters for alert queries
type AlertFilter struct {
	*QueryFilter
	*TimeRangeFilter

	AlertIDs  []string  `json:"alert_ids,omitempty" form:"alert_ids"`
	UserID    string    `json:"user_id,omitempty" form:"user_id"`
	AlertType AlertType `json:"alert_type,omitempty" form:"alert_type"`
	Unread    *bool     `json:"unread,omitempty" form:"unread"`
}

// NewAlertFilter creates a new alert filter with default options
func NewAlertFilter() *AlertFilter {
	return &AlertFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitAlertFilter creates a new alert filter without pagination
func NewNoLimitAlertFilter() *AlertFilter {
	return &AlertFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the alert filter
func (f AlertFilter) Validate() error {
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
	if f.AlertType != "" {
		if err := f.AlertType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *AlertFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *AlertFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *AlertFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *AlertFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *AlertFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *AlertFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
