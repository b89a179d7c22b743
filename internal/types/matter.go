package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// MatterStatus is the lifecycle status of a matter (a case or dossier)
type MatterStatus string

const (
	MatterStatusOpen       MatterStatus = "open"
	MatterStatusInProgress MatterStatus = "in_progress"
	MatterStatusSuspended  MatterStatus = "suspended"
	MatterStatusClosed     MatterStatus = "closed"
	MatterStatusArchived   MatterStatus = "archived"
)

func (s MatterStatus) String() string {
	return string(s)
}

func (s MatterStatus) Validate() error {
	allowed := []MatterStatus{
		MatterStatusOpen,
		MatterStatusInProgress,
		MatterStatusSuspended,
		MatterStatusClosed,
		MatterStatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid matter status").
			WithHint("Invalid matter status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MatterFilter represents filters for matter queries
type MatterFilter struct {
	*QueryFilter
	*TimeRangeFilter

	MatterIDs    []string     `json:"matter_ids,omitempty" form:"matter_ids"`
	ClientID     string       `json:"client_id,omitempty" form:"client_id"`
	MatterStatus MatterStatus `json:"matter_status,omitempty" form:"matter_status"`
	AssignedTo   string       `json:"assigned_to,omitempty" form:"assigned_to"`
	Search       string       `json:"search,omitempty" form:"search"`
}

// NewMatterFilter creates a new matter filter with default options
func NewMatterFilter() *MatterFilter {
	return &MatterFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitMatterFilter creates a new matter filter without pagination
func NewNoLimitMatterFilter() *MatterFilter {
	return &MatterFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the matter filter
func (f MatterFilter) Validate() error {
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
	if f.MatterStatus != "" {
		if err := f.MatterStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *MatterFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *MatterFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *MatterFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *MatterFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *MatterFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *MatterFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
