package dto

import (
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/tenant"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/shopspring/decimal"
)

type TenantResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	Address   string          `json:"address,omitempty"`
	City      string          `json:"city,omitempty"`
	TVARate   decimal.Decimal `json:"tva_rate"`
	Currency  string          `json:"currency"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type UpdateTenantRequest struct {
	Name    *string          `json:"name,omitempty"`
	Phone   *string          `json:"phone,omitempty"`
	Email   *string          `json:"email,omitempty" binding:"omitempty,email"`
	Address *string          `json:"address,omitempty"`
	City    *string          `json:"city,omitempty"`
	TVARate *decimal.Decimal `json:"tva_rate,omitempty"`
}

func (r *UpdateTenantRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("name cannot be empty").
			WithHint("Firm name cannot be empty").
			Mark(ierr.ErrValidation)
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

// NewTenantResponse converts a Tenant domain object into a TenantResponse DTO.
func NewTenantResponse(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Phone:     t.Phone,
		Email:     t.Email,
		Address:   t.Address,
		City:      t.City,
		TVARate:   t.TVARate,
		Currency:  t.Currency,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}
