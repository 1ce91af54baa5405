package port

import (
	"context"

	"github.com/google/uuid"

	"docpipe/internal/domain"
)

// VendorRepository defines the contract for vendor persistence.
type VendorRepository interface {
	// FindByName matches vendors case-insensitively; returns
	// domain.ErrNotFound when no vendor matches.
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*domain.Vendor, error)
	Create(ctx context.Context, vendor *domain.Vendor) error
}

// VendorBillRepository defines the contract for vendor bill persistence.
type VendorBillRepository interface {
	// Create inserts the bill and its lines in one transaction.
	Create(ctx context.Context, bill *domain.VendorBill) error
	GetByID(ctx context.Context, tenantID, billID uuid.UUID) (*domain.VendorBill, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.VendorBill, int, error)
}
