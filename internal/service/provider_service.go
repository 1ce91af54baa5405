package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docpipe/internal/domain"
	"docpipe/internal/llm"
	"docpipe/internal/port"
)

// connectionTestPrompt is the short completion request used to verify that an
// LLM provider's credentials and endpoint work.
const connectionTestPrompt = "Hello, this is a connection test. Respond with a short confirmation."

// CreateProviderInput is the DTO for registering a provider.
type CreateProviderInput struct {
	TenantID    uuid.UUID
	Name        string
	Kind        domain.ProviderKind
	Type        domain.ProviderType
	Sequence    int
	APIKey      string
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float64
	IsActive    bool
	IsDefault   bool
}

// UpdateProviderInput is the DTO for updating a provider. An empty APIKey
// keeps the stored key.
type UpdateProviderInput struct {
	TenantID    uuid.UUID
	ProviderID  uuid.UUID
	Name        string
	Sequence    int
	APIKey      string
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float64
	IsActive    bool
	IsDefault   bool
}

// ProviderService defines the provider management contract.
type ProviderService interface {
	Create(ctx context.Context, input *CreateProviderInput) (*domain.Provider, error)
	Update(ctx context.Context, input *UpdateProviderInput) (*domain.Provider, error)
	GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, kind domain.ProviderKind) ([]domain.Provider, error)
	Delete(ctx context.Context, tenantID, providerID uuid.UUID) error
	// TestConnection sends a short completion request through an LLM provider
	// and returns the model's reply.
	TestConnection(ctx context.Context, tenantID, providerID uuid.UUID) (string, error)
}

type providerService struct {
	providers port.ProviderRepository
	completer port.Completer
}

// NewProviderService creates a new ProviderService implementation.
func NewProviderService(providers port.ProviderRepository, completer port.Completer) ProviderService {
	return &providerService{providers: providers, completer: completer}
}

func (s *providerService) Create(ctx context.Context, input *CreateProviderInput) (*domain.Provider, error) {
	p := &domain.Provider{
		ID:          uuid.New(),
		TenantID:    input.TenantID,
		Name:        input.Name,
		Kind:        input.Kind,
		Type:        input.Type,
		Sequence:    input.Sequence,
		APIKey:      input.APIKey,
		Endpoint:    input.Endpoint,
		Model:       input.Model,
		MaxTokens:   input.MaxTokens,
		Temperature: input.Temperature,
		IsActive:    input.IsActive,
		IsDefault:   input.IsDefault,
	}

	log.Printf("providerService.Create: registering %s provider %q (%s) for tenant %s, key=%s",
		p.Kind, p.Name, p.Type, p.TenantID, p.MaskedKey())

	if err := s.providers.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *providerService) Update(ctx context.Context, input *UpdateProviderInput) (*domain.Provider, error) {
	p, err := s.providers.GetByID(ctx, input.TenantID, input.ProviderID)
	if err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.Sequence = input.Sequence
	if input.APIKey != "" {
		p.APIKey = input.APIKey
	}
	p.Endpoint = input.Endpoint
	p.Model = input.Model
	p.MaxTokens = input.MaxTokens
	p.Temperature = input.Temperature
	p.IsActive = input.IsActive
	p.IsDefault = input.IsDefault

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *providerService) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error) {
	return s.providers.GetByID(ctx, tenantID, providerID)
}

func (s *providerService) ListByTenant(ctx context.Context, tenantID uuid.UUID, kind domain.ProviderKind) ([]domain.Provider, error) {
	return s.providers.ListByTenant(ctx, tenantID, kind)
}

func (s *providerService) Delete(ctx context.Context, tenantID, providerID uuid.UUID) error {
	return s.providers.Delete(ctx, tenantID, providerID)
}

func (s *providerService) TestConnection(ctx context.Context, tenantID, providerID uuid.UUID) (string, error) {
	p, err := s.providers.GetByID(ctx, tenantID, providerID)
	if err != nil {
		return "", err
	}
	if p.Kind != domain.ProviderKindLLM {
		return "", fmt.Errorf("connection test supports llm providers only, got %s", p.Kind)
	}

	result, err := s.completer.Complete(ctx, p, connectionTestPrompt, llm.Options{})
	if err != nil {
		return "", err
	}
	return result.Content, nil
}
