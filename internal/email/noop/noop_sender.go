package noop

import (
	"context"
	"log"

	"docpipe/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendJobFailedEmail(_ context.Context, toEmail, jobName, errorMessage string) error {
	log.Printf("[NOOP EMAIL] Job failed notification for %s: job=%s error=%s", toEmail, jobName, errorMessage)
	return nil
}
