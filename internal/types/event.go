package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// EventType classifies calendar entries. Hearings and deadlines drive
// the alert generation job.
type EventType string

const (
	EventTypeHearing     EventType = "hearing"
	EventTypeAppointment EventType = "appointment"
	EventTypeDeadline    EventType = "deadline"
	EventTypeOther       EventType = "other"
)

func (t EventType) String() string {
	return string(t)
}

func (t EventType) Validate() error {
	allowed := []EventType{
		EventTypeHearing,
		EventTypeAppointment,
		EventTypeDeadline,
		EventTypeOther,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid event type").
			WithHint("Invalid event type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// EventFilter represents filters for calendar event queries
type EventFilter struct {
	*QueryFilter
	*TimeRangeFilter

	EventIDs  []string  `json:"event_ids,omitempty" form:"event_ids"`
	MatterID  string    `json:"matter_id,omitempty" form:"matter_id"`
	EventType EventType `json:"event_type,omitempty" form:"event_type"`
}

// NewEventFilter creates a new event filter with default options
func NewEventFilter() *EventFilter {
	return &EventFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitEventFilter creates a new event filter without pagination
func NewNoLimitEventFilter() *EventFilter {
	return &EventFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the event filter
func (f EventFilter) Validate() error {
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
	if f.EventType != "" {
		if err := f.EventType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *EventFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *EventFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *EventFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *EventFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *EventFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *EventFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
