package postgres

import (
	"context"
	"fmt"
	"time"

	domainInvoice "github.com/jurisflow/jurisflow/internal/domain/invoice"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
)

type invoiceRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) domainInvoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

var invoiceSortColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"issue_date":     true,
	"due_date":       true,
	"invoice_number": true,
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domainInvoice.Invoice) error {
	query := `
	INSERT INTO invoices (id, invoice_number, client_id, matter_id, invoice_status, issue_date, due_date,
		subtotal_ht, tva_rate, tva_amount, total_ttc, amount_paid, paid_at, currency, notes,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		inv.ID,
		inv.InvoiceNumber,
		inv.ClientID,
		inv.MatterID,
		inv.InvoiceStatus,
		inv.IssueDate,
		inv.DueDate,
		inv.SubtotalHT,
		inv.TVARate,
		inv.TVAAmount,
		inv.TotalTTC,
		inv.AmountPaid,
		inv.PaidAt,
		inv.Currency,
		inv.Notes,
		inv.TenantID,
		inv.Status,
		inv.CreatedAt,
		inv.UpdatedAt,
		inv.CreatedBy,
		inv.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An invoice with this number already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	return r.replaceLineItems(ctx, inv)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domainInvoice.Invoice, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM invoices WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var inv domainInvoice.Invoice
	err := r.db.Querier(ctx).GetContext(ctx, &inv, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*domainInvoice.Invoice, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM invoices WHERE invoice_number = $1 AND tenant_id = $2 AND status != 'deleted'`

	var inv domainInvoice.Invoice
	err := r.db.Querier(ctx).GetContext(ctx, &inv, query, invoiceNumber, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domainInvoice.Invoice) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE invoices
	SET client_id = $3, matter_id = $4, invoice_status = $5, issue_date = $6, due_date = $7,
		subtotal_ht = $8, tva_rate = $9, tva_amount = $10, total_ttc = $11, amount_paid = $12,
		paid_at = $13, notes = $14, updated_at = now(), updated_by = $15
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		inv.ID,
		tenantID,
		inv.ClientID,
		inv.MatterID,
		inv.InvoiceStatus,
		inv.IssueDate,
		inv.DueDate,
		inv.SubtotalHT,
		inv.TVARate,
		inv.TVAAmount,
		inv.TotalTTC,
		inv.AmountPaid,
		inv.PaidAt,
		inv.Notes,
		types.GetUserID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	return r.replaceLineItems(ctx, inv)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	tenantID := types.GetTenantID(ctx)
	query := `
	UPDATE invoices SET status = 'deleted', updated_at = now(), updated_by = $3
	WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query, id, tenantID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) ListByFilter(ctx context.Context, filter *types.InvoiceFilter) ([]*domainInvoice.Invoice, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, invoiceSortColumns)
	query += paginationClause(filter)

	invoices := make([]*domainInvoice.Invoice, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// NextInvoiceNumber allocates a sequential per tenant, per year number
// like FAC-2026-0042. The row lock on invoice_counters serializes
// concurrent allocations; callers must hold a transaction.
func (r *invoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	tenantID := types.GetTenantID(ctx)
	year := time.Now().UTC().Year()

	query := `
	INSERT INTO invoice_counters (tenant_id, year, counter)
	VALUES ($1, $2, 1)
	ON CONFLICT (tenant_id, year) DO UPDATE SET counter = invoice_counters.counter + 1
	RETURNING counter
	`

	var counter int64
	if err := r.db.Querier(ctx).GetContext(ctx, &counter, query, tenantID, year); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to allocate invoice number").
			Mark(ierr.ErrDatabase)
	}

	return fmt.Sprintf("FAC-%d-%04d", year, counter), nil
}

func (r *invoiceRepository) loadLineItems(ctx context.Context, inv *domainInvoice.Invoice) error {
	query := `SELECT * FROM invoice_line_items WHERE invoice_id = $1 AND tenant_id = $2 ORDER BY id`

	items := make([]*domainInvoice.LineItem, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &items, query, inv.ID, inv.TenantID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to fetch invoice lines").
			Mark(ierr.ErrDatabase)
	}
	inv.LineItems = items
	return nil
}

func (r *invoiceRepository) replaceLineItems(ctx context.Context, inv *domainInvoice.Invoice) error {
	q := r.db.Querier(ctx)

	if _, err := q.ExecContext(ctx,
		`DELETE FROM invoice_line_items WHERE invoice_id = $1 AND tenant_id = $2`,
		inv.ID, inv.TenantID,
	); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice lines").
			Mark(ierr.ErrDatabase)
	}

	insert := `
	INSERT INTO invoice_line_items (id, invoice_id, description, quantity, unit_price, amount, tenant_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, line := range inv.LineItems {
		if _, err := q.ExecContext(ctx, insert,
			line.ID,
			inv.ID,
			line.Description,
			line.Quantity,
			line.UnitPrice,
			line.Amount,
			inv.TenantID,
		); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to update invoice lines").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *invoiceRepository) buildListQuery(ctx context.Context, filter *types.InvoiceFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM invoices WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.MatterID != "" {
		args = append(args, filter.MatterID)
		query += fmt.Sprintf(" AND matter_id = $%d", len(args))
	}
	if filter.InvoiceStatus != "" {
		args = append(args, filter.InvoiceStatus)
		query += fmt.Sprintf(" AND invoice_status = $%d", len(args))
	}
	if filter.InvoiceNumber != "" {
		args = append(args, filter.InvoiceNumber)
		query += fmt.Sprintf(" AND invoice_number = $%d", len(args))
	}

	return query, args
}
