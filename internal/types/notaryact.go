package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// NotaryActType classifies the deeds recorded in the firm's notarial
// register
type NotaryActType string

const (
	NotaryActTypePropertySale           NotaryActType = "property_sale"
	NotaryActTypeDonation               NotaryActType = "donation"
	NotaryActTypeWill                   NotaryActType = "will"
	NotaryActTypeCompanyFormation       NotaryActType = "company_formation"
	NotaryActTypeLease                  NotaryActType = "lease"
	NotaryActTypePowerOfAttorney        NotaryActType = "power_of_attorney"
	NotaryActTypeInheritanceCertificate NotaryActType = "inheritance_certificate"
	NotaryActTypeAffidavit              NotaryActType = "affidavit"
	NotaryActTypeOther                  NotaryActType = "other"
)

func (t NotaryActType) String() string {
	return string(t)
}

func (t NotaryActType) Validate() error {
	allowed := []NotaryActType{
		NotaryActTypePropertySale,
		NotaryActTypeDonation,
		NotaryActTypeWill,
		NotaryActTypeCompanyFormation,
		NotaryActTypeLease,
		NotaryActTypePowerOfAttorney,
		NotaryActTypeInheritanceCertificate,
		NotaryActTypeAffidavit,
		NotaryActTypeOther,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid act type").
			WithHint("Invalid act type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// NotaryActFilter represents filters for notarial register queries
type NotaryActFilter struct {
	*QueryFilter
	*TimeRangeFilter

	MatterID string        `json:"matter_id,omitempty" form:"matter_id"`
	ClientID string        `json:"client_id,omitempty" form:"client_id"`
	ActType  NotaryActType `json:"act_type,omitempty" form:"act_type"`
	Signed   *bool         `json:"signed,omitempty" form:"signed"`
	Search   string        `json:"search,omitempty" form:"search"`
}

// NewNotaryActFilter creates a new act filter with default options
func NewNotaryActFilter() *NotaryActFilter {
	return &NotaryActFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// Validate validates the act filter
func (f NotaryActFilter) Validate() error {
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
	if f.ActType != "" {
		if err := f.ActType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *NotaryActFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *NotaryActFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *NotaryActFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *NotaryActFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *NotaryActFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *NotaryActFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
