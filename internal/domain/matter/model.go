package matter

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Matter is a case or dossier handled by the firm. Which fields are
// mandatory depends on the professional role of the practitioner
// creating it, see the validation service.
type Matter struct {
	ID            string             `db:"id" json:"id"`
	Reference     string             `db:"reference" json:"reference"`
	Title         string             `db:"title" json:"title"`
	Description   string             `db:"description" json:"description"`
	ClientID      string             `db:"client_id" json:"client_id"`
	MatterStatus  types.MatterStatus `db:"matter_status" json:"matter_status"`
	AssignedTo    string             `db:"assigned_to" json:"assigned_to"`
	Jurisdiction  string             `db:"jurisdiction" json:"jurisdiction"`
	CourtName     string             `db:"court_name" json:"court_name"`
	OpposingParty string             `db:"opposing_party" json:"opposing_party"`
	ServiceDate   *time.Time         `db:"service_date" json:"service_date,omitempty"`
	OpenedAt      time.Time          `db:"opened_at" json:"opened_at"`
	ClosedAt      *time.Time         `db:"closed_at" json:"closed_at,omitempty"`
	Metadata      types.Metadata     `db:"metadata" json:"metadata"`
	types.BaseModel
}

func NewMatter(ctx context.Context, title, clientID string) *Matter {
	return &Matter{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MATTER),
		Reference:    types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_MATTER),
		Title:        title,
		ClientID:     clientID,
		MatterStatus: types.MatterStatusOpen,
		OpenedAt:     time.Now().UTC(),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}
