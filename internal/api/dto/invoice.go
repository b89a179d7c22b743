package dto

import (
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/invoice"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

func (r *LineItemRequest) Validate() error {
	if r.Description == "" {
		return ierr.NewError("line item description is required").
			WithHint("Every line item needs a description").
			Mark(ierr.ErrValidation)
	}
	if !r.Quantity.IsPositive() {
		return ierr.NewError("line item quantity must be positive").
			WithHint("Quantity must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.UnitPrice.IsNegative() {
		return ierr.NewError("line item unit price cannot be negative").
			WithHint("Unit price cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type CreateInvoiceRequest struct {
	ClientID  string             `json:"client_id" binding:"required"`
	MatterID  string             `json:"matter_id,omitempty"`
	DueDate   *time.Time         `json:"due_date,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	TVARate   *decimal.Decimal   `json:"tva_rate,omitempty"`
	LineItems []*LineItemRequest `json:"line_items" binding:"required,min=1"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if r.ClientID == "" {
		return ierr.NewError("client_id is required").
			WithHint("An invoice must be issued to a client").
			Mark(ierr.ErrValidation)
	}
	if len(r.LineItems) == 0 {
		return ierr.NewError("invoice requires at least one line item").
			WithHint("Add at least one line item").
			Mark(ierr.ErrValidation)
	}
	for _, line := range r.LineItems {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	if r.TVARate != nil {
		if r.TVARate.IsNegative() || r.TVARate.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("tva rate out of range").
				WithHint("TVA rate must be between 0 and 100").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type UpdateInvoiceRequest struct {
	DueDate   *time.Time         `json:"due_date,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	TVARate   *decimal.Decimal   `json:"tva_rate,omitempty"`
	LineItems []*LineItemRequest `json:"line_items,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	for _, line := range r.LineItems {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	if r.TVARate != nil {
		if r.TVARate.IsNegative() || r.TVARate.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("tva rate out of range").
				WithHint("TVA rate must be between 0 and 100").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type InvoiceResponse struct {
	*invoice.Invoice
	// AmountDue is the remaining balance after succeeded payments
	AmountDue decimal.Decimal `json:"amount_due"`
}

type ListInvoicesResponse struct {
	Items      []*InvoiceResponse `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	due := inv.TotalTTC.Sub(inv.AmountPaid)
	if due.IsNegative() {
		due = decimal.Zero
	}
	return &InvoiceResponse{Invoice: inv, AmountDue: due}
}
