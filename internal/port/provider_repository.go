package port

import (
	"context"

	"github.com/google/uuid"

	"docpipe/internal/domain"
)

// ProviderRepository defines the contract for provider configuration
// persistence. Create and Update enforce the single-default invariant: when a
// provider is stored with IsDefault set, every other provider of the same
// kind and tenant is un-marked in the same transaction.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	Update(ctx context.Context, p *domain.Provider) error
	GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, kind domain.ProviderKind) ([]domain.Provider, error)
	// ResolveDefault returns the active default provider of the given kind, or
	// failing that any active provider ordered by (sequence, name), or
	// domain.ErrProviderNotFound.
	ResolveDefault(ctx context.Context, kind domain.ProviderKind, tenantID uuid.UUID) (*domain.Provider, error)
	Delete(ctx context.Context, tenantID, providerID uuid.UUID) error
}
