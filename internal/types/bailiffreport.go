package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// BailiffReportType classifies the acts a bailiff records in the firm's
// register
type BailiffReportType string

const (
	BailiffReportTypeObservation  BailiffReportType = "observation"
	BailiffReportTypeService      BailiffReportType = "service"
	BailiffReportTypeSeizure      BailiffReportType = "seizure"
	BailiffReportTypeEviction     BailiffReportType = "eviction"
	BailiffReportTypeInventory    BailiffReportType = "inventory"
	BailiffReportTypeFormalNotice BailiffReportType = "formal_notice"
	BailiffReportTypeOther        BailiffReportType = "other"
)

func (t BailiffReportType) String() string {
	return string(t)
}

func (t BailiffReportType) Validate() error {
	allowed := []BailiffReportType{
		BailiffReportTypeObservation,
		BailiffReportTypeService,
		BailiffReportTypeSeizure,
		BailiffReportTypeEviction,
		BailiffReportTypeInventory,
		BailiffReportTypeFormalNotice,
		BailiffReportTypeOther,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid report type").
			WithHint("Invalid report type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BailiffReportFilter represents filters for register queries
type BailiffReportFilter struct {
	*QueryFilter
	*TimeRangeFilter

	MatterID   string            `json:"matter_id,omitempty" form:"matter_id"`
	ClientID   string            `json:"client_id,omitempty" form:"client_id"`
	ReportType BailiffReportType `json:"report_type,omitempty" form:"report_type"`
	Served     *bool             `json:"served,omitempty" form:"served"`
	Search     string            `json:"search,omitempty" form:"search"`
}

// NewBailiffReportFilter creates a new report filter with default options
func NewBailiffReportFilter() *BailiffReportFilter {
	return &BailiffReportFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// Validate validates the report filter
func (f BailiffReportFilter) Validate() error {
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
	if f.ReportType != "" {
		if err := f.ReportType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *BailiffReportFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *BailiffReportFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *BailiffReportFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *BailiffReportFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *BailiffReportFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *BailiffReportFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
