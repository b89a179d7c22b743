package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// ClientType distinguishes natural persons from legal entities
type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

func (t ClientType) String() string {
	return string(t)
}

func (t ClientType) Validate() error {
	allowed := []ClientType{
		ClientTypeIndividual,
		ClientTypeCompany,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid client type").
			WithHint("Invalid client type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ClientFilter represents filters for client queries
type ClientFilter struct {
	*QueryFilter
	*TimeRangeFilter

	ClientIDs  []string   `json:"client_ids,omitempty" form:"client_ids"`
	ClientType ClientType `json:"client_type,omitempty" form:"client_type"`
	Search     string     `json:"search,omitempty" form:"search"`
}

// NewClientFilter creates a new client filter with default options
func NewClientFilter() *ClientFilter {
	return &ClientFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitClientFilter creates a new client filter without pagination
func NewNoLimitClientFilter() *ClientFilter {
	return &ClientFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the client filter
func (f ClientFilter) Validate() error {
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
	if f.ClientType != "" {
		if err := f.ClientType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *ClientFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *ClientFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *ClientFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *ClientFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *ClientFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *ClientFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
