package alert

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Alert is a generated reminder shown to a user. ReferenceID points at
// the row that triggered it (event, invoice or task).
type Alert struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	AlertType   types.AlertType `db:"alert_type" json:"alert_type"`
	Title       string          `db:"title" json:"title"`
	Body        string          `db:"body" json:"body"`
	ReferenceID string          `db:"reference_id" json:"reference_id"`
	DueAt       time.Time       `db:"due_at" json:"due_at"`
	ReadAt      *time.Time      `db:"read_at" json:"read_at,omitempty"`
	types.BaseModel
}

func NewAlert(ctx context.Context, userID string, alertType types.AlertType, referenceID string, dueAt time.Time) *Alert {
	return &Alert{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ALERT),
		UserID:      userID,
		AlertType:   alertType,
		ReferenceID: referenceID,
		DueAt:       dueAt,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

// IsRead reports whether the alert has been acknowledged
func (a *Alert) IsRead() bool {
	return a.ReadAt != nil
}
