package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/alert"
	"github.com/jurisflow/jurisflow/internal/domain/event"
	"github.com/jurisflow/jurisflow/internal/domain/invoice"
	"github.com/jurisflow/jurisflow/internal/domain/task"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
)

const (
	hearingReminderWindow  = 48 * time.Hour
	deadlineReminderWindow = 72 * time.Hour
	taskDueWindow          = 24 * time.Hour
)

type AlertService interface {
	ListAlerts(ctx context.Context, filter *types.AlertFilter) (*dto.ListAlertsResponse, error)
	MarkRead(ctx context.Context, id string) (*dto.AlertResponse, error)
	// GenerateAlerts sweeps upcoming events, due tasks and overdue
	// invoices and creates the corresponding reminders. The sweep is
	// idempotent: an alert is generated at most once per reference.
	GenerateAlerts(ctx context.Context) (*dto.GenerateAlertsResponse, error)
}

type alertService struct {
	ServiceParams
}

func NewAlertService(params ServiceParams) AlertService {
	return &alertService{ServiceParams: params}
}

func (s *alertService) ListAlerts(ctx context.Context, filter *types.AlertFilter) (*dto.ListAlertsResponse, error) {
	if filter == nil {
		filter = types.NewAlertFilter()
	}
	// Users only ever see their own alerts
	filter.UserID = types.GetUserID(ctx)
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	alerts, err := s.AlertRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.AlertRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListAlertsResponse{
		Items: lo.Map(alerts, func(a *alert.Alert, _ int) *dto.AlertResponse {
			return dto.NewAlertResponse(a)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *alertService) MarkRead(ctx context.Context, id string) (*dto.AlertResponse, error) {
	a, err := s.AlertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.UserID != types.GetUserID(ctx) {
		// Another user's alert reads the same as a missing one
		return nil, ierr.NewError("alert not found").
			WithHint("Alert not found").
			Mark(ierr.ErrNotFound)
	}

	if a.ReadAt == nil {
		a.ReadAt = lo.ToPtr(time.Now().UTC())
		if err := s.AlertRepo.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	return dto.NewAlertResponse(a), nil
}

func (s *alertService) GenerateAlerts(ctx context.Context) (*dto.GenerateAlertsResponse, error) {
	resp := &dto.GenerateAlertsResponse{}
	now := time.Now().UTC()

	hearings, deadlines, err := s.sweepEvents(ctx, now)
	if err != nil {
		return nil, err
	}
	resp.HearingReminders = hearings
	resp.DeadlineReminders = deadlines

	overdue, err := s.sweepInvoices(ctx, now)
	if err != nil {
		return nil, err
	}
	resp.OverdueInvoices = overdue

	tasksDue, err := s.sweepTasks(ctx, now)
	if err != nil {
		return nil, err
	}
	resp.TasksDue = tasksDue

	return resp, nil
}

// sweepEvents raises reminders for hearings and deadlines coming up
// within their respective windows
func (s *alertService) sweepEvents(ctx context.Context, now time.Time) (int, int, error) {
	filter := types.NewNoLimitEventFilter()
	filter.TimeRangeFilter = &types.TimeRangeFilter{
		StartTime: lo.ToPtr(now),
		EndTime:   lo.ToPtr(now.Add(deadlineReminderWindow)),
	}

	events, err := s.EventRepo.ListByFilter(ctx, filter)
	if err != nil {
		return 0, 0, err
	}

	var hearings, deadlines int
	for _, e := range events {
		var alertType types.AlertType
		switch e.EventType {
		case types.EventTypeHearing:
			if e.StartsAt.Sub(now) > hearingReminderWindow {
				continue
			}
			alertType = types.AlertTypeHearingReminder
		case types.EventTypeDeadline:
			alertType = types.AlertTypeDeadlineReminder
		default:
			continue
		}

		created, err := s.createOnce(ctx, alertType, e.ID, s.eventRecipient(ctx, e), e.StartsAt,
			e.Title, fmt.Sprintf("%s scheduled for %s", e.Title, e.StartsAt.Format("2006-01-02 15:04")))
		if err != nil {
			return hearings, deadlines, err
		}
		if created {
			if alertType == types.AlertTypeHearingReminder {
				hearings++
			} else {
				deadlines++
			}
		}
	}
	return hearings, deadlines, nil
}

// sweepInvoices flags sent invoices past their due date as overdue and
// alerts the user who issued them
func (s *alertService) sweepInvoices(ctx context.Context, now time.Time) (int, error) {
	filter := types.NewNoLimitInvoiceFilter()
	filter.InvoiceStatus = types.InvoiceStatusSent

	invoices, err := s.InvoiceRepo.ListByFilter(ctx, filter)
	if err != nil {
		return 0, err
	}

	var count int
	for _, candidate := range invoices {
		if !candidate.DueDate.Before(now) {
			continue
		}

		// Re-read by id so the update carries the full line item set
		inv, err := s.InvoiceRepo.GetByID(ctx, candidate.ID)
		if err != nil {
			return count, err
		}
		inv.InvoiceStatus = types.InvoiceStatusOverdue
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return count, err
		}

		created, err := s.createOnce(ctx, types.AlertTypeInvoiceOverdue, inv.ID, s.invoiceRecipient(inv), inv.DueDate,
			fmt.Sprintf("Invoice %s is overdue", inv.InvoiceNumber),
			fmt.Sprintf("Invoice %s was due on %s", inv.InvoiceNumber, inv.DueDate.Format("2006-01-02")))
		if err != nil {
			return count, err
		}
		if created {
			count++
		}
	}
	return count, nil
}

// sweepTasks alerts assignees about open tasks due within the window
func (s *alertService) sweepTasks(ctx context.Context, now time.Time) (int, error) {
	filter := types.NewNoLimitTaskFilter()
	filter.TaskStatus = types.TaskStatusPending

	tasks, err := s.TaskRepo.ListByFilter(ctx, filter)
	if err != nil {
		return 0, err
	}

	var count int
	for _, t := range tasks {
		if t.DueDate == nil || t.DueDate.Sub(now) > taskDueWindow {
			continue
		}

		created, err := s.createOnce(ctx, types.AlertTypeTaskDue, t.ID, s.taskRecipient(t), *t.DueDate,
			fmt.Sprintf("Task due: %s", t.Title),
			fmt.Sprintf("%s is due on %s", t.Title, t.DueDate.Format("2006-01-02")))
		if err != nil {
			return count, err
		}
		if created {
			count++
		}
	}
	return count, nil
}

func (s *alertService) createOnce(ctx context.Context, alertType types.AlertType, referenceID, userID string, dueAt time.Time, title, body string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	exists, err := s.AlertRepo.ExistsForReference(ctx, alertType, referenceID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	a := alert.NewAlert(ctx, userID, alertType, referenceID, dueAt)
	a.Title = title
	a.Body = body
	if err := s.AlertRepo.Create(ctx, a); err != nil {
		if ierr.IsAlreadyExists(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *alertService) eventRecipient(ctx context.Context, e *event.Event) string {
	m, err := s.MatterRepo.GetByID(ctx, e.MatterID)
	if err == nil && m.AssignedTo != "" {
		return m.AssignedTo
	}
	return e.CreatedBy
}

func (s *alertService) invoiceRecipient(inv *invoice.Invoice) string {
	return inv.CreatedBy
}

func (s *alertService) taskRecipient(t *task.Task) string {
	if t.AssignedTo != "" {
		return t.AssignedTo
	}
	return t.CreatedBy
}
