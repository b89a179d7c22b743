package invoice

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is a bill issued to a client. Monetary amounts are whole
// XOF francs; the currency has no minor unit.
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	ClientID      string              `db:"client_id" json:"client_id"`
	MatterID      string              `db:"matter_id" json:"matter_id"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	IssueDate     time.Time           `db:"issue_date" json:"issue_date"`
	DueDate       time.Time           `db:"due_date" json:"due_date"`
	SubtotalHT    decimal.Decimal     `db:"subtotal_ht" json:"subtotal_ht"`
	TVARate       decimal.Decimal     `db:"tva_rate" json:"tva_rate"`
	TVAAmount     decimal.Decimal     `db:"tva_amount" json:"tva_amount"`
	TotalTTC      decimal.Decimal     `db:"total_ttc" json:"total_ttc"`
	AmountPaid    decimal.Decimal     `db:"amount_paid" json:"amount_paid"`
	PaidAt        *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	Currency      string              `db:"currency" json:"currency"`
	Notes         string              `db:"notes" json:"notes"`
	LineItems     []*LineItem         `db:"-" json:"line_items"`
	types.BaseModel
}

// LineItem is a single billed line on an invoice
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	TenantID    string          `db:"tenant_id" json:"tenant_id"`
}

func NewInvoice(ctx context.Context, clientID string) *Invoice {
	now := time.Now().UTC()
	return &Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:      clientID,
		InvoiceStatus: types.InvoiceStatusDraft,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 1, 0),
		TVARate:       types.DefaultTVARate,
		Currency:      types.DefaultCurrency,
		SubtotalHT:    decimal.Zero,
		TVAAmount:     decimal.Zero,
		TotalTTC:      decimal.Zero,
		AmountPaid:    decimal.Zero,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// Recalculate rederives every monetary total from the line items and
// the TVA rate. Totals are never accepted from a payload.
func (i *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for _, line := range i.LineItems {
		line.Amount = line.Quantity.Mul(line.UnitPrice).Round(0)
		subtotal = subtotal.Add(line.Amount)
	}
	i.SubtotalHT = subtotal
	i.TVAAmount = subtotal.Mul(i.TVARate).Div(decimal.NewFromInt(100)).Round(0)
	i.TotalTTC = i.SubtotalHT.Add(i.TVAAmount)
}

// IsClosed reports whether the invoice can no longer receive payments
func (i *Invoice) IsClosed() bool {
	return i.InvoiceStatus.IsClosed()
}
