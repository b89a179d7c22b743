package postgres

import (
	"context"
	"fmt"

	domainPayment "github.com/jurisflow/jurisflow/internal/domain/payment"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/logger"
	"github.com/jurisflow/jurisflow/internal/postgres"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewPaymentRepository(db postgres.IClient, logger *logger.Logger) domainPayment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

var paymentSortColumns = map[string]bool{
	"created_at": true,
	"paid_at":    true,
	"amount":     true,
}

func (r *paymentRepository) Create(ctx context.Context, p *domainPayment.Payment) error {
	query := `
	INSERT INTO payments (id, invoice_id, amount, payment_method, payment_status, reference, paid_at, notes,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Querier(ctx).ExecContext(
		ctx, query,
		p.ID,
		p.InvoiceID,
		p.Amount,
		p.PaymentMethod,
		p.PaymentStatus,
		p.Reference,
		p.PaidAt,
		p.Notes,
		p.TenantID,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
		p.CreatedBy,
		p.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record payment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domainPayment.Payment, error) {
	tenantID := types.GetTenantID(ctx)
	query := `SELECT * FROM payments WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`

	var p domainPayment.Payment
	err := r.db.Querier(ctx).GetContext(ctx, &p, query, id, tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("payment not found").
				WithHint("Payment not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch payment").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *paymentRepository) ListByFilter(ctx context.Context, filter *types.PaymentFilter) ([]*domainPayment.Payment, error) {
	query, args := r.buildListQuery(ctx, filter, false)
	query += orderClause(filter, paymentSortColumns)
	query += paginationClause(filter)

	payments := make([]*domainPayment.Payment, 0)
	if err := r.db.Querier(ctx).SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payments").
			Mark(ierr.ErrDatabase)
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int64, error) {
	query, args := r.buildListQuery(ctx, filter, true)

	var count int64
	if err := r.db.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count payments").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *paymentRepository) SumSucceededByInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	tenantID := types.GetTenantID(ctx)
	query := `
	SELECT COALESCE(SUM(amount), 0)
	FROM payments
	WHERE invoice_id = $1 AND tenant_id = $2 AND payment_status = $3 AND status != 'deleted'
	`

	var sum decimal.Decimal
	if err := r.db.Querier(ctx).GetContext(ctx, &sum, query, invoiceID, tenantID, types.PaymentStatusSucceeded); err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to sum payments").
			Mark(ierr.ErrDatabase)
	}
	return sum, nil
}

func (r *paymentRepository) buildListQuery(ctx context.Context, filter *types.PaymentFilter, count bool) (string, []interface{}) {
	selectClause := "SELECT *"
	if count {
		selectClause = "SELECT COUNT(*)"
	}

	query := selectClause + " FROM payments WHERE tenant_id = $1 AND status = $2"
	args := []interface{}{types.GetTenantID(ctx), filter.GetStatus()}

	if filter.InvoiceID != "" {
		args = append(args, filter.InvoiceID)
		query += fmt.Sprintf(" AND invoice_id = $%d", len(args))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		query += fmt.Sprintf(" AND payment_method = $%d", len(args))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}

	return query, args
}
