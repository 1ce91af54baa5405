package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendJobFailedEmail(ctx context.Context, toEmail, jobName, errorMessage string) error {
	args := m.Called(ctx, toEmail, jobName, errorMessage)
	return args.Error(0)
}
