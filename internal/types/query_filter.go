package types

import (
	"time"

	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// Constants for default filter values
const (
	FILTER_DEFAULT_LIMIT  = 50
	FILTER_DEFAULT_OFFSET = 0
	FILTER_DEFAULT_STATUS = StatusPublished
	FILTER_DEFAULT_SORT   = "created_at"
	FILTER_DEFAULT_ORDER  = "desc"
	FILTER_MAX_LIMIT      = 1000
)

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Status *Status `json:"status,omitempty" form:"status"`
	Sort   *string `json:"sort,omitempty" form:"sort"`
	Order  *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
}

// TimeRangeFilter represents a time range filter with start and end times
type TimeRangeFilter struct {
	StartTime *time.Time `json:"start_time,omitempty" form:"start_time" validate:"omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty" form:"end_time" validate:"omitempty,gtfield=StartTime"`
}

// NewDefaultQueryFilter creates a new QueryFilter with default values
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(FILTER_DEFAULT_OFFSET),
		Status: lo.ToPtr(FILTER_DEFAULT_STATUS),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// NewNoLimitQueryFilter creates a new QueryFilter with no pagination
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Status: lo.ToPtr(FILTER_DEFAULT_STATUS),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// Validate validates the query filter
func (f QueryFilter) Validate() error {
	if f.Limit != nil {
		if *f.Limit < 1 {
			return ierr.NewError("limit must be greater than 0").
				WithHint("Limit must be greater than 0").
				Mark(ierr.ErrValidation)
		}
		if *f.Limit > FILTER_MAX_LIMIT {
			return ierr.NewError("limit exceeds maximum allowed value").
				WithHint("Limit exceeds maximum allowed value").
				WithReportableDetails(map[string]any{
					"max_limit": FILTER_MAX_LIMIT,
				}).
				Mark(ierr.ErrValidation)
		}
	}

	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must be non-negative").
			WithHint("Offset must be non-negative").
			Mark(ierr.ErrValidation)
	}

	if f.Order != nil && *f.Order != "asc" && *f.Order != "desc" {
		return ierr.NewError("invalid sort order").
			WithHint("Order must be either 'asc' or 'desc'").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Validate validates the time range filter
func (f TimeRangeFilter) Validate() error {
	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return ierr.NewError("end time must be after start time").
			WithHint("End time must be after start time").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit returns the limit value or default if not set
func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return *f.Limit
}

// GetOffset returns the offset value or default if not set
func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return FILTER_DEFAULT_OFFSET
	}
	return *f.Offset
}

// GetStatus returns the status value or default if not set
func (f *QueryFilter) GetStatus() string {
	if f == nil || f.Status == nil {
		return string(FILTER_DEFAULT_STATUS)
	}
	return string(*f.Status)
}

// GetSort returns the sort value or default if not set
func (f *QueryFilter) GetSort() string {
	if f == nil || f.Sort == nil {
		return FILTER_DEFAULT_SORT
	}
	return *f.Sort
}

// GetOrder returns the order value or default if not set
func (f *QueryFilter) GetOrder() string {
	if f == nil || f.Order == nil {
		return FILTER_DEFAULT_ORDER
	}
	return *f.Order
}

// IsUnlimited returns true if no limit is set
func (f *QueryFilter) IsUnlimited() bool {
	return f == nil || f.Limit == nil
}

// BaseFilter defines the interface for all filters
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetStatus() string
	GetSort() string
	GetOrder() string
	Validate() error
	IsUnlimited() bool
}
