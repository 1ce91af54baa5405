// Package registry resolves which configured provider a pipeline run uses.
package registry

import (
	"context"

	"github.com/google/uuid"

	"docpipe/internal/domain"
	"docpipe/internal/port"
)

// Resolver picks the provider for one pipeline run: an explicitly chosen
// provider wins, otherwise the tenant's default for the kind. Providers are
// read-only to the pipeline; resolution never mutates them.
type Resolver struct {
	providers port.ProviderRepository
}

// NewResolver creates a Resolver over the given provider repository.
func NewResolver(providers port.ProviderRepository) *Resolver {
	return &Resolver{providers: providers}
}

// Resolve returns the provider to use for the given kind. When explicit is
// non-nil it must name an existing provider of that kind belonging to the
// tenant; otherwise selection falls to ResolveDefault: active default first,
// then any active provider, then domain.ErrProviderNotFound.
func (r *Resolver) Resolve(ctx context.Context, kind domain.ProviderKind, tenantID uuid.UUID, explicit *uuid.UUID) (*domain.Provider, error) {
	if explicit != nil {
		p, err := r.providers.GetByID(ctx, tenantID, *explicit)
		if err != nil {
			return nil, err
		}
		if p.Kind != kind {
			return nil, domain.ErrProviderNotFound
		}
		return p, nil
	}
	return r.providers.ResolveDefault(ctx, kind, tenantID)
}

// ResolveOCR resolves the OCR provider for a run.
func (r *Resolver) ResolveOCR(ctx context.Context, tenantID uuid.UUID, explicit *uuid.UUID) (*domain.Provider, error) {
	return r.Resolve(ctx, domain.ProviderKindOCR, tenantID, explicit)
}

// ResolveLLM resolves the LLM provider for a run.
func (r *Resolver) ResolveLLM(ctx context.Context, tenantID uuid.UUID, explicit *uuid.UUID) (*domain.Provider, error) {
	return r.Resolve(ctx, domain.ProviderKindLLM, tenantID, explicit)
}
