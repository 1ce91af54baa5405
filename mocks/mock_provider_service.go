package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docpipe/internal/domain"
	"docpipe/internal/service"
)

// MockProviderService is a mock implementation of service.ProviderService.
type MockProviderService struct {
	mock.Mock
}

func (m *MockProviderService) Create(ctx context.Context, input *service.CreateProviderInput) (*domain.Provider, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderService) Update(ctx context.Context, input *service.UpdateProviderInput) (*domain.Provider, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderService) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*domain.Provider, error) {
	args := m.Called(ctx, tenantID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderService) ListByTenant(ctx context.Context, tenantID uuid.UUID, kind domain.ProviderKind) ([]domain.Provider, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderService) Delete(ctx context.Context, tenantID, providerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, providerID)
	return args.Error(0)
}

func (m *MockProviderService) TestConnection(ctx context.Context, tenantID, providerID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, providerID)
	return args.String(0), args.Error(1)
}
