package dto

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jurisflow/jurisflow/internal/domain/notaryact"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

const (
	actTitleMinLength       = 3
	actTitleMaxLength       = 500
	actNumberMaxLength      = 50
	actDescriptionMaxLength = 5000
)

type CreateNotaryActRequest struct {
	ActType     types.NotaryActType `json:"act_type" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	ActNumber   string              `json:"act_number,omitempty"`
	MatterID    string              `json:"matter_id,omitempty"`
	ClientID    string              `json:"client_id,omitempty"`
	Description string              `json:"description,omitempty"`
	ActDate     *time.Time          `json:"act_date,omitempty"`
	Signed      bool                `json:"signed,omitempty"`
	NotaryFees  *decimal.Decimal    `json:"notary_fees,omitempty"`
	TaxAmount   *decimal.Decimal    `json:"tax_amount,omitempty"`
}

func (r *CreateNotaryActRequest) Validate() error {
	if utf8.RuneCountInString(r.Title) < actTitleMinLength || utf8.RuneCountInString(r.Title) > actTitleMaxLength {
		return ierr.NewError("invalid title length").
			WithHint("Act title must be between 3 and 500 characters").
			Mark(ierr.ErrValidation)
	}
	if err := r.ActType.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.ActNumber) > actNumberMaxLength {
		return ierr.NewError("act_number too long").
			WithHint("Act number cannot exceed 50 characters").
			Mark(ierr.ErrValidation)
	}
	if utf8.RuneCountInString(r.Description) > actDescriptionMaxLength {
		return ierr.NewError("description too long").
			WithHint("Description cannot exceed 5000 characters").
			Mark(ierr.ErrValidation)
	}
	if r.NotaryFees != nil && r.NotaryFees.IsNegative() {
		return ierr.NewError("notary_fees cannot be negative").
			WithHint("Notary fees cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.TaxAmount != nil && r.TaxAmount.IsNegative() {
		return ierr.NewError("tax_amount cannot be negative").
			WithHint("Tax amount cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateNotaryActRequest) ToAct(ctx context.Context) *notaryact.Act {
	a := notaryact.NewAct(ctx, r.ActType, r.Title)
	a.ActNumber = r.ActNumber
	a.MatterID = r.MatterID
	a.ClientID = r.ClientID
	a.Description = r.Description
	if r.ActDate != nil {
		a.ActDate = *r.ActDate
	}
	if r.NotaryFees != nil {
		a.NotaryFees = *r.NotaryFees
	}
	if r.TaxAmount != nil {
		a.TaxAmount = *r.TaxAmount
	}
	return a
}

type UpdateNotaryActRequest struct {
	ActType     *types.NotaryActType `json:"act_type,omitempty"`
	Title       *string              `json:"title,omitempty"`
	ActNumber   *string              `json:"act_number,omitempty"`
	Description *string              `json:"description,omitempty"`
	ActDate     *time.Time           `json:"act_date,omitempty"`
	Signed      *bool                `json:"signed,omitempty"`
	NotaryFees  *decimal.Decimal     `json:"notary_fees,omitempty"`
	TaxAmount   *decimal.Decimal     `json:"tax_amount,omitempty"`
}

func (r *UpdateNotaryActRequest) Validate() error {
	if r.Title != nil && (utf8.RuneCountInString(*r.Title) < actTitleMinLength || utf8.RuneCountInString(*r.Title) > actTitleMaxLength) {
		return ierr.NewError("invalid title length").
			WithHint("Act title must be between 3 and 500 characters").
			Mark(ierr.ErrValidation)
	}
	if r.ActType != nil {
		if err := r.ActType.Validate(); err != nil {
			return err
		}
	}
	if r.ActNumber != nil && utf8.RuneCountInString(*r.ActNumber) > actNumberMaxLength {
		return ierr.NewError("act_number too long").
			WithHint("Act number cannot exceed 50 characters").
			Mark(ierr.ErrValidation)
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > actDescriptionMaxLength {
		return ierr.NewError("description too long").
			WithHint("Description cannot exceed 5000 characters").
			Mark(ierr.ErrValidation)
	}
	if r.NotaryFees != nil && r.NotaryFees.IsNegative() {
		return ierr.NewError("notary_fees cannot be negative").
			WithHint("Notary fees cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if r.TaxAmount != nil && r.TaxAmount.IsNegative() {
		return ierr.NewError("tax_amount cannot be negative").
			WithHint("Tax amount cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type NotaryActResponse struct {
	*notaryact.Act
}

type ListNotaryActsResponse struct {
	Items      []*NotaryActResponse `json:"items"`
	Pagination PaginationResponse   `json:"pagination"`
}

func NewNotaryActResponse(a *notaryact.Act) *NotaryActResponse {
	return &NotaryActResponse{Act: a}
}
