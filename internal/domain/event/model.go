package event

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
)

// Event is a calendar entry attached to a matter
type Event struct {
	ID          string          `db:"id" json:"id"`
	MatterID    string          `db:"matter_id" json:"matter_id"`
	EventType   types.EventType `db:"event_type" json:"event_type"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Location    string          `db:"location" json:"location"`
	StartsAt    time.Time       `db:"starts_at" json:"starts_at"`
	EndsAt      *time.Time      `db:"ends_at" json:"ends_at,omitempty"`
	types.BaseModel
}

func NewEvent(ctx context.Context, matterID string, eventType types.EventType, startsAt time.Time) *Event {
	return &Event{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		MatterID:  matterID,
		EventType: eventType,
		StartsAt:  startsAt,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
