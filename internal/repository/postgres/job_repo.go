package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docpipe/internal/domain"
	"docpipe/internal/port"
)

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.ProcessingJob) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO processing_jobs (
			id, tenant_id, name, file_name, file_type, document_type, language,
			ocr_provider_id, llm_provider_id, s3_bucket, s3_key, file_size,
			state, auto_process, ocr_text, parsed_data, error_message, record_ref,
			created_at, updated_at, processed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20, $21
		)`,
		job.ID, job.TenantID, job.Name, job.FileName, job.FileType, job.DocumentType, job.Language,
		job.OCRProviderID, job.LLMProviderID, job.S3Bucket, job.S3Key, job.FileSize,
		job.State, job.AutoProcess, job.OCRText, job.ParsedData, job.ErrorMessage, job.RecordRef,
		job.CreatedAt, job.UpdatedAt, job.ProcessedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error) {
	var job domain.ProcessingJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM processing_jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ProcessingJob, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM processing_jobs WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.ListByTenant count: %w", err)
	}

	var jobs []domain.ProcessingJob
	err = r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM processing_jobs WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.ListByTenant: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) UpdateRun(ctx context.Context, job *domain.ProcessingJob) error {
	job.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE processing_jobs SET
			state = $1, ocr_text = $2, parsed_data = $3, error_message = $4,
			record_ref = $5, processed_at = $6, updated_at = $7
		 WHERE id = $8 AND tenant_id = $9`,
		job.State, job.OCRText, job.ParsedData, job.ErrorMessage,
		job.RecordRef, job.ProcessedAt, job.UpdatedAt,
		job.ID, job.TenantID)
	if err != nil {
		return fmt.Errorf("jobRepo.UpdateRun: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// ClaimQueued flips up to limit auto-process draft jobs into processing state
// and returns them. SKIP LOCKED keeps concurrent workers from claiming the
// same job.
func (r *jobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ProcessingJob, error) {
	var jobs []domain.ProcessingJob
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE processing_jobs SET state = $1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM processing_jobs
			WHERE state = $3 AND auto_process = true
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.JobStateProcessing, time.Now().UTC(), domain.JobStateDraft, limit)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *jobRepo) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM processing_jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		return fmt.Errorf("jobRepo.Delete: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
