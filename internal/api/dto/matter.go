package dto

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/matter"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
)

type CreateMatterRequest struct {
	Title         string         `json:"title" binding:"required"`
	Description   string         `json:"description,omitempty"`
	ClientID      string         `json:"client_id" binding:"required"`
	AssignedTo    string         `json:"assigned_to,omitempty"`
	Jurisdiction  string         `json:"jurisdiction,omitempty"`
	CourtName     string         `json:"court_name,omitempty"`
	OpposingParty string         `json:"opposing_party,omitempty"`
	ServiceDate   *time.Time     `json:"service_date,omitempty"`
	Metadata      types.Metadata `json:"metadata,omitempty"`
}

func (r *CreateMatterRequest) Validate() error {
	if r.Title == "" {
		return ierr.NewError("title is required").
			WithHint("Matter title is required").
			Mark(ierr.ErrValidation)
	}
	if r.ClientID == "" {
		return ierr.NewError("client_id is required").
			WithHint("A matter must belong to a client").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateMatterRequest) ToMatter(ctx context.Context) *matter.Matter {
	m := matter.NewMatter(ctx, r.Title, r.ClientID)
	m.Description = r.Description
	m.AssignedTo = r.AssignedTo
	m.Jurisdiction = r.Jurisdiction
	m.CourtName = r.CourtName
	m.OpposingParty = r.OpposingParty
	m.ServiceDate = r.ServiceDate
	m.Metadata = r.Metadata
	return m
}

type UpdateMatterRequest struct {
	Title         *string             `json:"title,omitempty"`
	Description   *string             `json:"description,omitempty"`
	MatterStatus  *types.MatterStatus `json:"matter_status,omitempty"`
	AssignedTo    *string             `json:"assigned_to,omitempty"`
	Jurisdiction  *string             `json:"jurisdiction,omitempty"`
	CourtName     *string             `json:"court_name,omitempty"`
	OpposingParty *string             `json:"opposing_party,omitempty"`
	ServiceDate   *time.Time          `json:"service_date,omitempty"`
	Metadata      *types.Metadata     `json:"metadata,omitempty"`
}

func (r *UpdateMatterRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return ierr.NewError("title cannot be empty").
			WithHint("Matter title cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if r.MatterStatus != nil {
		if err := r.MatterStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MatterResponse carries the matter plus any non blocking validation
// warnings raised for the caller's professional role
type MatterResponse struct {
	*matter.Matter
	Warnings []string `json:"warnings,omitempty"`
}

type ListMattersResponse struct {
	Items      []*MatterResponse  `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

func NewMatterResponse(m *matter.Matter, warnings ...string) *MatterResponse {
	return &MatterResponse{Matter: m, Warnings: warnings}
}
