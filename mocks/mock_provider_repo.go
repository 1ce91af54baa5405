package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docpipe/internal/domain"
)

// MockProviderRepo is a mock implementation of port.ProviderRepository.
type MockProviderRepo struct {
	mock.Mock
}

func (m *MockProviderRepo) Create(ctx context.Context, p *domain.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepo) Update(ctx context.Context, p *domain.Provider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepo) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error) {
	args := m.Called(ctx, tenantID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, kind domain.ProviderKind) ([]domain.Provider, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepo) ResolveDefault(ctx context.Context, kind domain.ProviderKind, tenantID uuid.UUID) (*domain.Provider, error) {
	args := m.Called(ctx, kind, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepo) Delete(ctx context.Context, tenantID, providerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, providerID)
	return args.Error(0)
}
