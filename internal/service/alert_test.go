package service

import (
	"testing"
	"time"

	"github.com/jurisflow/jurisflow/internal/domain/client"
	"github.com/jurisflow/jurisflow/internal/domain/event"
	"github.com/jurisflow/jurisflow/internal/domain/invoice"
	"github.com/jurisflow/jurisflow/internal/domain/task"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AlertServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AlertService
}

func TestAlertService(t *testing.T) {
	suite.Run(t, new(AlertServiceSuite))
}

func (s *AlertServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *AlertServiceSuite) setupService() {
	stores := s.GetStores()
	s.service = NewAlertService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		RBAC:        s.GetRBAC(),
		Limiter:     s.GetLimiter(),
		MatterRepo:  stores.MatterRepo,
		InvoiceRepo: stores.InvoiceRepo,
		EventRepo:   stores.EventRepo,
		TaskRepo:    stores.TaskRepo,
		AlertRepo:   stores.AlertRepo,
	})
}

func (s *AlertServiceSuite) seedHearing(startsAt time.Time) *event.Event {
	e := event.NewEvent(s.GetContext(), "", types.EventTypeHearing, startsAt)
	e.Title = "Audience correctionnelle"
	s.NoError(s.GetStores().EventRepo.Create(s.GetContext(), e))
	return e
}

func (s *AlertServiceSuite) seedOverdueInvoice() *invoice.Invoice {
	c := client.NewClient(s.GetContext(), types.ClientTypeIndividual)
	c.FirstName = "Adamou"
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), c))

	inv := invoice.NewInvoice(s.GetContext(), c.ID)
	inv.InvoiceNumber = "FAC-2026-0001"
	inv.InvoiceStatus = types.InvoiceStatusSent
	inv.DueDate = time.Now().UTC().Add(-24 * time.Hour)
	inv.LineItems = []*invoice.LineItem{
		{
			ID:          types.GenerateUUID(),
			InvoiceID:   inv.ID,
			Description: "Honoraires",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(50000),
			TenantID:    inv.TenantID,
		},
	}
	inv.Recalculate()
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *AlertServiceSuite) TestHearingWithinWindowGeneratesReminder() {
	s.seedHearing(time.Now().UTC().Add(24 * time.Hour))

	resp, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.HearingReminders)

	alerts, err := s.service.ListAlerts(s.GetContext(), types.NewAlertFilter())
	s.NoError(err)
	s.Len(alerts.Items, 1)
	s.Equal(types.AlertTypeHearingReminder, alerts.Items[0].AlertType)
	s.False(alerts.Items[0].IsRead)
}

func (s *AlertServiceSuite) TestHearingOutsideWindowIgnored() {
	s.seedHearing(time.Now().UTC().Add(96 * time.Hour))

	resp, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.HearingReminders)
}

func (s *AlertServiceSuite) TestSweepIsIdempotent() {
	s.seedHearing(time.Now().UTC().Add(24 * time.Hour))

	first, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(1, first.HearingReminders)

	second, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(0, second.HearingReminders)

	alerts, err := s.service.ListAlerts(s.GetContext(), types.NewAlertFilter())
	s.NoError(err)
	s.Len(alerts.Items, 1)
}

func (s *AlertServiceSuite) TestDeadlineWithinWindowGeneratesReminder() {
	e := event.NewEvent(s.GetContext(), "", types.EventTypeDeadline, time.Now().UTC().Add(60*time.Hour))
	e.Title = "Depot de conclusions"
	s.NoError(s.GetStores().EventRepo.Create(s.GetContext(), e))

	resp, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.DeadlineReminders)
	s.Equal(0, resp.HearingReminders)
}

func (s *AlertServiceSuite) TestOverdueInvoiceFlaggedAndAlerted() {
	inv := s.seedOverdueInvoice()

	resp, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.OverdueInvoices)

	updated, err := s.GetStores().InvoiceRepo.GetByID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, updated.InvoiceStatus)
	// The status flip must not drop the line items
	s.Len(updated.LineItems, 1)

	// A second sweep neither re-flags nor re-alerts
	again, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(0, again.OverdueInvoices)
}

func (s *AlertServiceSuite) TestTaskDueSoonGeneratesAlert() {
	due := task.NewTask(s.GetContext(), "Preparer les conclusions")
	due.DueDate = lo.ToPtr(time.Now().UTC().Add(12 * time.Hour))
	s.NoError(s.GetStores().TaskRepo.Create(s.GetContext(), due))

	later := task.NewTask(s.GetContext(), "Archiver le dossier")
	later.DueDate = lo.ToPtr(time.Now().UTC().Add(7 * 24 * time.Hour))
	s.NoError(s.GetStores().TaskRepo.Create(s.GetContext(), later))

	undated := task.NewTask(s.GetContext(), "Classer le courrier")
	s.NoError(s.GetStores().TaskRepo.Create(s.GetContext(), undated))

	resp, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.TasksDue)
}

func (s *AlertServiceSuite) TestMarkRead() {
	s.seedHearing(time.Now().UTC().Add(24 * time.Hour))

	_, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)

	alerts, err := s.service.ListAlerts(s.GetContext(), types.NewAlertFilter())
	s.NoError(err)
	s.Len(alerts.Items, 1)

	marked, err := s.service.MarkRead(s.GetContext(), alerts.Items[0].ID)
	s.NoError(err)
	s.True(marked.IsRead)

	// Marking twice keeps the original read timestamp
	again, err := s.service.MarkRead(s.GetContext(), alerts.Items[0].ID)
	s.NoError(err)
	s.Equal(marked.ReadAt, again.ReadAt)

	unread := types.NewAlertFilter()
	unread.Unread = lo.ToPtr(true)
	remaining, err := s.service.ListAlerts(s.GetContext(), unread)
	s.NoError(err)
	s.Len(remaining.Items, 0)
}

func (s *AlertServiceSuite) TestMarkReadOtherUsersAlert() {
	s.seedHearing(time.Now().UTC().Add(24 * time.Hour))

	_, err := s.service.GenerateAlerts(s.GetContext())
	s.NoError(err)

	alerts, err := s.service.ListAlerts(s.GetContext(), types.NewAlertFilter())
	s.NoError(err)
	s.Len(alerts.Items, 1)

	otherCtx := types.SetUserID(s.GetContext(), "user_other")
	_, err = s.service.MarkRead(otherCtx, alerts.Items[0].ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
