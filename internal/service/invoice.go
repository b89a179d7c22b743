package service

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/invoice"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	// FinalizeInvoice moves a draft to sent, locking its number in the
	// client's view
	FinalizeInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	CancelInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

// CreateInvoice allocates the sequential invoice number and persists
// the invoice in one transaction so numbers never have gaps from
// failed creations.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionCreateInvoices); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if req.MatterID != "" {
		if _, err := s.MatterRepo.GetByID(ctx, req.MatterID); err != nil {
			return nil, err
		}
	}

	inv := invoice.NewInvoice(ctx, req.ClientID)
	inv.MatterID = req.MatterID
	inv.Notes = req.Notes
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}

	tvaRate, currency, err := s.firmBillingDefaults(ctx)
	if err != nil {
		return nil, err
	}
	inv.TVARate = tvaRate
	inv.Currency = currency
	if req.TVARate != nil {
		inv.TVARate = *req.TVARate
	}

	inv.LineItems = buildLineItems(inv, req.LineItems)
	inv.Recalculate()

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		number, err := s.InvoiceRepo.NextInvoiceNumber(txCtx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		return s.InvoiceRepo.Create(txCtx, inv)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

// firmBillingDefaults returns the firm's TVA rate and currency
func (s *invoiceService) firmBillingDefaults(ctx context.Context) (decimal.Decimal, string, error) {
	firm, err := s.TenantRepo.GetByID(ctx, types.GetTenantID(ctx))
	if err != nil {
		return decimal.Zero, "", err
	}
	rate := firm.TVARate
	currency := firm.Currency
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return rate, currency, nil
}

func buildLineItems(inv *invoice.Invoice, lines []*dto.LineItemRequest) []*invoice.LineItem {
	items := make([]*invoice.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TenantID:    inv.TenantID,
		})
	}
	return items
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewInvoices); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionViewInvoices); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv)
		}),
		Pagination: dto.NewPaginationResponse(int(count), filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditInvoices); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.IsClosed() {
		return nil, ierr.NewError("invoice is closed").
			WithHint("Paid or cancelled invoices cannot be edited").
			WithReportableDetails(map[string]any{
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvoiceClosed)
	}

	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.TVARate != nil {
		inv.TVARate = *req.TVARate
	}
	if len(req.LineItems) > 0 {
		inv.LineItems = buildLineItems(inv, req.LineItems)
	}
	inv.Recalculate()

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) FinalizeInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditInvoices); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.InvoiceStatus != types.InvoiceStatusDraft {
		return nil, ierr.NewError("only draft invoices can be finalized").
			WithHint("Only draft invoices can be finalized").
			WithReportableDetails(map[string]any{
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.InvoiceStatus = types.InvoiceStatusSent
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionEditInvoices); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.IsClosed() {
		return nil, ierr.NewError("invoice is closed").
			WithHint("The invoice is already paid or cancelled").
			Mark(ierr.ErrInvoiceClosed)
	}

	inv.InvoiceStatus = types.InvoiceStatusCancelled
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.RBAC.CheckPermission(ctx, types.GetPermissionTier(ctx), types.PermissionDeleteInvoices); err != nil {
		return err
	}

	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Only drafts may be deleted; issued invoices stay on record
	if inv.InvoiceStatus != types.InvoiceStatusDraft {
		return ierr.NewError("only draft invoices can be deleted").
			WithHint("Cancel the invoice instead of deleting it").
			WithReportableDetails(map[string]any{
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.InvoiceRepo.Delete(ctx, id)
}
