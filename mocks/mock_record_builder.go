package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecordBuilder is a mock implementation of port.RecordBuilder.
type MockRecordBuilder struct {
	mock.Mock
}

func (m *MockRecordBuilder) Build(ctx context.Context, tenantID, jobID uuid.UUID, parsed json.RawMessage) (string, error) {
	args := m.Called(ctx, tenantID, jobID, parsed)
	return args.String(0), args.Error(1)
}
