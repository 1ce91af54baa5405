package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docpipe/internal/domain"
	"docpipe/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed VendorBillRepository.
func NewBillRepo(db *sqlx.DB) port.VendorBillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.VendorBill) error {
	bill.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("billRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO vendor_bills (
			id, tenant_id, job_id, vendor_id, vendor_name, invoice_number,
			invoice_date, total, total_tax, total_discount, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		bill.ID, bill.TenantID, bill.JobID, bill.VendorID, bill.VendorName, bill.InvoiceNumber,
		bill.InvoiceDate, bill.Total, bill.TotalTax, bill.TotalDiscount, bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("billRepo.Create: %w", err)
	}

	for _, line := range bill.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO vendor_bill_lines (
				id, bill_id, product, description, quantity, price_unit, subtotal
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, line.BillID, line.Product, line.Description, line.Quantity, line.PriceUnit, line.Subtotal)
		if err != nil {
			return fmt.Errorf("billRepo.Create line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("billRepo.Create commit: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, tenantID, billID uuid.UUID) (*domain.VendorBill, error) {
	var bill domain.VendorBill
	err := r.db.GetContext(ctx, &bill,
		"SELECT * FROM vendor_bills WHERE id = $1 AND tenant_id = $2", billID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &bill.Lines,
		"SELECT * FROM vendor_bill_lines WHERE bill_id = $1 ORDER BY id", billID)
	if err != nil {
		return nil, fmt.Errorf("billRepo.GetByID lines: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.VendorBill, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM vendor_bills WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.ListByTenant count: %w", err)
	}

	var bills []domain.VendorBill
	err = r.db.SelectContext(ctx, &bills,
		`SELECT * FROM vendor_bills WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("billRepo.ListByTenant: %w", err)
	}
	return bills, total, nil
}
