package types

// UserFilter represents filters for user queries
type UserFilter struct {
	*QueryFilter
	*TimeRangeFilter

	UserIDs          []string         `json:"user_ids,omitempty" form:"user_ids"`
	PermissionTier   PermissionTier   `json:"permission_tier,omitempty" form:"permission_tier"`
	ProfessionalRole ProfessionalRole `json:"professional_role,omitempty" form:"professional_role"`
	Search           string           `json:"search,omitempty" form:"search"`
}

// NewUserFilter creates a new user filter with default options
func NewUserFilter() *UserFilter {
	return &UserFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitUserFilter creates a new user filter without pagination
func NewNoLimitUserFilter() *UserFilter {
	return &UserFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the user filter
func (f UserFilter) Validate() error {
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
	if f.PermissionTier != "" {
		if err := f.PermissionTier.Validate(); err != nil {
			return err
		}
	}
	if f.ProfessionalRole != "" {
		if err := f.ProfessionalRole.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *UserFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *UserFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *UserFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *UserFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *UserFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *UserFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
