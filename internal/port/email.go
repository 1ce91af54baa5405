package port

import "context"

// EmailSender defines the contract for operator notifications.
type EmailSender interface {
	SendJobFailedEmail(ctx context.Context, toEmail, jobName, errorMessage string) error
}
