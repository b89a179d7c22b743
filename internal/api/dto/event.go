package dto

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/event"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

type CreateEventRequest struct {
	MatterID    string          `json:"matter_id" binding:"required"`
	EventType   types.EventType `json:"event_type" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	StartsAt    time.Time       `json:"starts_at" binding:"required"`
	EndsAt      *time.Time      `json:"ends_at,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	if r.MatterID == "" {
		return ierr.NewError("matter_id is required").
			WithHint("An event must be attached to a matter").
			Mark(ierr.ErrValidation)
	}
	if r.Title == "" {
		return ierr.NewError("title is required").
			WithHint("Event title is required").
			Mark(ierr.ErrValidation)
	}
	if r.StartsAt.IsZero() {
		return ierr.NewError("starts_at is required").
			WithHint("Event start time is required").
			Mark(ierr.ErrValidation)
	}
	if r.EndsAt != nil && r.EndsAt.Before(r.StartsAt) {
		return ierr.NewError("ends_at before starts_at").
			WithHint("Event end time must be after the start time").
			Mark(ierr.ErrValidation)
	}
	return r.EventType.Validate()
}

func (r *CreateEventRequest) ToEvent(ctx context.Context) *event.Event {
	e := event.NewEvent(ctx, r.MatterID, r.EventType, r.StartsAt)
	e.Title = r.Title
	e.Description = r.Description
	e.Location = r.Location
	e.EndsAt = r.EndsAt
	return e
}

type UpdateEventRequest struct {
	EventType   *types.EventType `json:"event_type,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *string          `json:"location,omitempty"`
	StartsAt    *time.Time       `json:"starts_at,omitempty"`
	EndsAt      *time.Time       `json:"ends_at,omitempty"`
}

func (r *UpdateEventRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return ierr.NewError("title cannot be empty").
			WithHint("Event title cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if r.EventType != nil {
		return r.EventType.Validate()
	}
	return nil
}

type EventResponse struct {
	*event.Event
}

type ListEventsResponse struct {
	Items      []*EventResponse   `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewEventResponse(e *event.Event) *EventResponse {
	return &EventResponse{Event: e}
}
