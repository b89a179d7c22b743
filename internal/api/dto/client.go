package dto

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/domain/client"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

type CreateClientRequest struct {
	ClientType  types.ClientType `json:"client_type" binding:"required"`
	FirstName   string           `json:"first_name,omitempty"`
	LastName    string           `json:"last_name,omitempty"`
	CompanyName string           `json:"company_name,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Email       string           `json:"email,omitempty" binding:"omitempty,email"`
	Address     string           `json:"address,omitempty"`
	City        string           `json:"city,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Metadata    types.Metadata   `json:"metadata,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	if err := r.ClientType.Validate(); err != nil {
		return err
	}
	switch r.ClientType {
	case types.ClientTypeIndividual:
		if r.FirstName == "" && r.LastName == "" {
			return ierr.NewError("individual client requires a name").
				WithHint("Provide a first or last name").
				Mark(ierr.ErrValidation)
		}
	case types.ClientTypeCompany:
		if r.CompanyName == "" {
			return ierr.NewError("company client requires a company name").
				WithHint("Provide a company name").
				Mark(ierr.ErrValidation)
		}
	}
	if r.Phone != "" {
		if err := types.ValidatePhone(r.Phone); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	c := client.NewClient(ctx, r.ClientType)
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.CompanyName = r.CompanyName
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.City = r.City
	c.Notes = r.Notes
	c.Metadata = r.Metadata
	return c
}

type UpdateClientRequest struct {
	FirstName   *string         `json:"first_name,omitempty"`
	LastName    *string         `json:"last_name,omitempty"`
	CompanyName *string         `json:"company_name,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Email       *string         `json:"email,omitempty" binding:"omitempty,email"`
	Address     *string         `json:"address,omitempty"`
	City        *string         `json:"city,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	Metadata    *types.Metadata `json:"metadata,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	if r.Phone != nil && *r.Phone != "" {
		return types.ValidatePhone(*r.Phone)
	}
	return nil
}

type ClientResponse struct {
	*client.Client
	DisplayName string `json:"display_name"`
}

type ListClientsResponse struct {
	Items      []*ClientResponse  `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{Client: c, DisplayName: c.DisplayName()}
}
