package port

import (
	"context"

	"github.com/google/uuid"

	"docpipe/internal/domain"
)

// JobRepository defines the contract for processing job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.ProcessingJob) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ProcessingJob, int, error)
	// UpdateRun persists the mutable run fields: state, ocr_text, parsed_data,
	// error_message, record_ref and processed_at.
	UpdateRun(ctx context.Context, job *domain.ProcessingJob) error
	// ClaimQueued atomically flips up to limit auto-process draft jobs into
	// processing state and returns them, so concurrent workers never pick up
	// the same job twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ProcessingJob, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}
