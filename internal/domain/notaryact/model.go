package notaryact

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

// Act is one entry of the firm's notarial register
type Act struct {
	ID          string              `db:"id" json:"id"`
	MatterID    string              `db:"matter_id" json:"matter_id,omitempty"`
	ClientID    string              `db:"client_id" json:"client_id,omitempty"`
	ActType     types.NotaryActType `db:"act_type" json:"act_type"`
	ActNumber   string              `db:"act_number" json:"act_number,omitempty"`
	Title       string              `db:"title" json:"title"`
	Description string              `db:"description" json:"description,omitempty"`
	ActDate     time.Time           `db:"act_date" json:"act_date"`
	Signed      bool                `db:"signed" json:"signed"`
	SignedAt    *time.Time          `db:"signed_at" json:"signed_at,omitempty"`
	NotaryFees  decimal.Decimal     `db:"notary_fees" json:"notary_fees"`
	TaxAmount   decimal.Decimal     `db:"tax_amount" json:"tax_amount"`
	types.BaseModel
}

func NewAct(ctx context.Context, actType types.NotaryActType, title string) *Act {
	return &Act{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NOTARY_ACT),
		ActType:    actType,
		Title:      title,
		ActDate:    time.Now().UTC(),
		NotaryFees: decimal.Zero,
		TaxAmount:  decimal.Zero,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}
