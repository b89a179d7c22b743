package types

import (
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/samber/lo"
)

// PaymentMethod is the channel through which a payment was received.
// Mobile money operators are first class citizens in this market.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodTransfer    PaymentMethod = "transfer"
	PaymentMethodCheque      PaymentMethod = "cheque"
	PaymentMethodOrangeMoney PaymentMethod = "orange_money"
	PaymentMethodAirtelMoney PaymentMethod = "airtel_money"
	PaymentMethodWave        PaymentMethod = "wave"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodOther       PaymentMethod = "other"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodTransfer,
		PaymentMethodCheque,
		PaymentMethodOrangeMoney,
		PaymentMethodAirtelMoney,
		PaymentMethodWave,
		PaymentMethodCard,
		PaymentMethodOther,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment method").
			WithHint("Invalid payment method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentStatus is the settlement state of a recorded payment.
// Only succeeded payments count toward invoice reconciliation.
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusSucceeded,
		PaymentStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid payment status").
			WithHint("Invalid payment status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentFilter represents filters for payment queries
type PaymentFilter struct {
	*QueryFilter
	*TimeRangeFilter

	PaymentIDs    []string      `json:"payment_ids,omitempty" form:"payment_ids"`
	InvoiceID     string        `json:"invoice_id,omitempty" form:"invoice_id"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty" form:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty" form:"payment_status"`
}

// NewPaymentFilter creates a new payment filter with default options
func NewPaymentFilter() *PaymentFilter {
	return &PaymentFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitPaymentFilter creates a new payment filter without pagination
func NewNoLimitPaymentFilter() *PaymentFilter {
	return &PaymentFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the payment filter
func (f PaymentFilter) Validate() error {
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
	if f.PaymentMethod != "" {
		if err := f.PaymentMethod.Validate(); err != nil {
			return err
		}
	}
	if f.PaymentStatus != "" {
		if err := f.PaymentStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *PaymentFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *PaymentFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter interface
func (f *PaymentFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter interface
func (f *PaymentFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *PaymentFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited returns true if the filter has no pagination limits
func (f *PaymentFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
