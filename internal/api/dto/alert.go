package dto

import (
	"github.com/jurisflow/jurisflow/internal/domain/alert"
)

type AlertResponse struct {
	*alert.Alert
	IsRead bool `json:"is_read"`
}

type ListAlertsResponse struct {
	Items      []*AlertResponse   `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// GenerateAlertsResponse reports how many alerts each sweep produced
type GenerateAlertsResponse struct {
	HearingReminders  int `json:"hearing_reminders"`
	DeadlineReminders int `json:"deadline_reminders"`
	OverdueInvoices   int `json:"overdue_invoices"`
	TasksDue          int `json:"tasks_due"`
}

func NewAlertResponse(a *alert.Alert) *AlertResponse {
	return &AlertResponse{Alert: a, IsRead: a.IsRead()}
}
