package dto

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jurisflow/jurisflow/internal/domain/bailiffreport"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

const (
	reportTitleMinLength       = 3
	reportTitleMaxLength       = 500
	reportNumberMaxLength      = 50
	reportLocationMaxLength    = 500
	reportDescriptionMaxLength = 10000
	reportServedToMaxLength    = 200
)

type CreateBailiffReportRequest struct {
	ReportType   types.BailiffReportType `json:"report_type" binding:"required"`
	Title        string                  `json:"title" binding:"required"`
	ReportNumber string                  `json:"report_number,omitempty"`
	MatterID     string                  `json:"matter_id,omitempty"`
	ClientID     string                  `json:"client_id,omitempty"`
	Description  string                  `json:"description,omitempty"`
	Location     string                  `json:"location,omitempty"`
	GPSLat       *decimal.Decimal        `json:"gps_lat,omitempty"`
	GPSLng       *decimal.Decimal        `json:"gps_lng,omitempty"`
	ReportDate   *time.Time              `json:"report_date,omitempty"`
	Served       bool                    `json:"served,omitempty"`
	ServedTo     string                  `json:"served_to,omitempty"`
	Fees         *decimal.Decimal        `json:"fees,omitempty"`
}

func (r *CreateBailiffReportRequest) Validate() error {
	if utf8.RuneCountInString(r.Title) < reportTitleMinLength || utf8.RuneCountInString(r.Title) > reportTitleMaxLength {
		return ierr.NewError("invalid title length").
			WithHint("Report title must be between 3 and 500 characters").
			Mark(ierr.ErrValidation)
	}
	if err := r.ReportType.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.ReportNumber) > reportNumberMaxLength {
		return ierr.NewError("report_number too long").
			WithHint("Report number cannot exceed 50 characters").
			Mark(ierr.ErrValidation)
	}
	if utf8.RuneCountInString(r.Location) > reportLocationMaxLength {
		return ierr.NewError("location too long").
			WithHint("Location cannot exceed 500 characters").
			Mark(ierr.ErrValidation)
	}
	if utf8.RuneCountInString(r.Description) > reportDescriptionMaxLength {
		return ierr.NewError("description too long").
			WithHint("Description cannot exceed 10000 characters").
			Mark(ierr.ErrValidation)
	}
	if utf8.RuneCountInString(r.ServedTo) > reportServedToMaxLength {
		return ierr.NewError("served_to too long").
			WithHint("Served-to name cannot exceed 200 characters").
			Mark(ierr.ErrValidation)
	}
	if err := validateGPS(r.GPSLat, r.GPSLng); err != nil {
		return err
	}
	if r.Fees != nil && r.Fees.IsNegative() {
		return ierr.NewError("fees cannot be negative").
			WithHint("Fees cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateBailiffReportRequest) ToReport(ctx context.Context) *bailiffreport.Report {
	rep := bailiffreport.NewReport(ctx, r.ReportType, r.Title)
	rep.ReportNumber = r.ReportNumber
	rep.MatterID = r.MatterID
	rep.ClientID = r.ClientID
	rep.Description = r.Description
	rep.Location = r.Location
	rep.GPSLat = r.GPSLat
	rep.GPSLng = r.GPSLng
	rep.ServedTo = r.ServedTo
	if r.ReportDate != nil {
		rep.ReportDate = *r.ReportDate
	}
	if r.Fees != nil {
		rep.Fees = *r.Fees
	}
	return rep
}

type UpdateBailiffReportRequest struct {
	ReportType   *types.BailiffReportType `json:"report_type,omitempty"`
	Title        *string                  `json:"title,omitempty"`
	ReportNumber *string                  `json:"report_number,omitempty"`
	Description  *string                  `json:"description,omitempty"`
	Location     *string                  `json:"location,omitempty"`
	GPSLat       *decimal.Decimal         `json:"gps_lat,omitempty"`
	GPSLng       *decimal.Decimal         `json:"gps_lng,omitempty"`
	ReportDate   *time.Time               `json:"report_date,omitempty"`
	Served       *bool                    `json:"served,omitempty"`
	ServedTo     *string                  `json:"served_to,omitempty"`
	Fees         *decimal.Decimal         `json:"fees,omitempty"`
}

func (r *UpdateBailiffReportRequest) Validate() error {
	if r.Title != nil && (utf8.RuneCountInString(*r.Title) < reportTitleMinLength || utf8.RuneCountInString(*r.Title) > reportTitleMaxLength) {
		return ierr.NewError("invalid title length").
			WithHint("Report title must be between 3 and 500 characters").
			Mark(ierr.ErrValidation)
	}
	if r.ReportType != nil {
		if err := r.ReportType.Validate(); err != nil {
			return err
		}
	}
	if r.ReportNumber != nil && utf8.RuneCountInString(*r.ReportNumber) > reportNumberMaxLength {
		return ierr.NewError("report_number too long").
			WithHint("Report number cannot exceed 50 characters").
			Mark(ierr.ErrValidation)
	}
	if r.Location != nil && utf8.RuneCountInString(*r.Location) > reportLocationMaxLength {
		return ierr.NewError("location too long").
			WithHint("Location cannot exceed 500 characters").
			Mark(ierr.ErrValidation)
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > reportDescriptionMaxLength {
		return ierr.NewError("description too long").
			WithHint("Description cannot exceed 10000 characters").
			Mark(ierr.ErrValidation)
	}
	if r.ServedTo != nil && utf8.RuneCountInString(*r.ServedTo) > reportServedToMaxLength {
		return ierr.NewError("served_to too long").
			WithHint("Served-to name cannot exceed 200 characters").
			Mark(ierr.ErrValidation)
	}
	if err := validateGPS(r.GPSLat, r.GPSLng); err != nil {
		return err
	}
	if r.Fees != nil && r.Fees.IsNegative() {
		return ierr.NewError("fees cannot be negative").
			WithHint("Fees cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateGPS(lat, lng *decimal.Decimal) error {
	if lat != nil {
		if lat.LessThan(decimal.NewFromInt(-90)) || lat.GreaterThan(decimal.NewFromInt(90)) {
			return ierr.NewError("invalid latitude").
				WithHint("Latitude must be between -90 and 90").
				Mark(ierr.ErrValidation)
		}
	}
	if lng != nil {
		if lng.LessThan(decimal.NewFromInt(-180)) || lng.GreaterThan(decimal.NewFromInt(180)) {
			return ierr.NewError("invalid longitude").
				WithHint("Longitude must be between -180 and 180").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type BailiffReportResponse struct {
	*bailiffreport.Report
}

type ListBailiffReportsResponse struct {
	Items      []*BailiffReportResponse `json:"items"`
	Pagination PaginationResponse       `json:"pagination"`
}

func NewBailiffReportResponse(r *bailiffreport.Report) *BailiffReportResponse {
	return &BailiffReportResponse{Report: r}
}
