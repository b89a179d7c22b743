package client

import (
	"context"
	"strings"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Client is a party the firm represents, either a natural person or a
// company.
type Client struct {
	ID          string           `db:"id" json:"id"`
	ClientType  types.ClientType `db:"client_type" json:"client_type"`
	FirstName   string           `db:"first_name" json:"first_name"`
	LastName    string           `db:"last_name" json:"last_name"`
	CompanyName string           `db:"company_name" json:"company_name"`
	Phone       string           `db:"phone" json:"phone"`
	Email       string           `db:"email" json:"email"`
	Address     string           `db:"address" json:"address"`
	City        string           `db:"city" json:"city"`
	Notes       string           `db:"notes" json:"notes"`
	Metadata    types.Metadata   `db:"metadata" json:"metadata"`
	types.BaseModel
}

func NewClient(ctx context.Context, clientType types.ClientType) *Client {
	return &Client{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		ClientType: clientType,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

// DisplayName returns the name shown in lists and on invoices
func (c *Client) DisplayName() string {
	if c.ClientType == types.ClientTypeCompany {
		return c.CompanyName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
