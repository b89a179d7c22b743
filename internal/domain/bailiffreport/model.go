package bailiffreport

import (
	"context"
	"time"

	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

// Report is one entry of the firm's bailiff register. Matter and client
// links are optional; an observation can predate any case file.
type Report struct {
	ID           string                  `db:"id" json:"id"`
	MatterID     string                  `db:"matter_id" json:"matter_id,omitempty"`
	ClientID     string                  `db:"client_id" json:"client_id,omitempty"`
	ReportType   types.BailiffReportType `db:"report_type" json:"report_type"`
	ReportNumber string                  `db:"report_number" json:"report_number,omitempty"`
	Title        string                  `db:"title" json:"title"`
	Description  string                  `db:"description" json:"description,omitempty"`
	Location     string                  `db:"location" json:"location,omitempty"`
	GPSLat       *decimal.Decimal        `db:"gps_lat" json:"gps_lat,omitempty"`
	GPSLng       *decimal.Decimal        `db:"gps_lng" json:"gps_lng,omitempty"`
	ReportDate   time.Time               `db:"report_date" json:"report_date"`
	Served       bool                    `db:"served" json:"served"`
	ServedAt     *time.Time              `db:"served_at" json:"served_at,omitempty"`
	ServedTo     string                  `db:"served_to" json:"served_to,omitempty"`
	Fees         decimal.Decimal         `db:"fees" json:"fees"`
	types.BaseModel
}

func NewReport(ctx context.Context, reportType types.BailiffReportType, title string) *Report {
	return &Report{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BAILIFF_REPORT),
		ReportType: reportType,
		Title:      title,
		ReportDate: time.Now().UTC(),
		Fees:       decimal.Zero,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}
