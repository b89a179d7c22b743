package tenant

import (
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

// Tenant represents a law firm. Every other row in the system hangs off
// a tenant and is invisible outside it.
type Tenant struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Phone     string          `db:"phone" json:"phone"`
	Email     string          `db:"email" json:"email"`
	Address   string          `db:"address" json:"address"`
	City      string          `db:"city" json:"city"`
	TVARate   decimal.Decimal `db:"tva_rate" json:"tva_rate"`
	Currency  string          `db:"currency" json:"currency"`
	Status    types.Status    `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

func NewTenant(name string) *Tenant {
	now := time.Now().UTC()
	return &Tenant{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:      name,
		TVARate:   types.DefaultTVARate,
		Currency:  types.DefaultCurrency,
		Status:    types.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
