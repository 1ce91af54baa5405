package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docpipe/internal/domain"
	"docpipe/internal/language"
	"docpipe/internal/llm"
	"docpipe/internal/ocr"
	"docpipe/internal/port"
	"docpipe/internal/prompt"
	"docpipe/internal/record"
	"docpipe/internal/registry"
)

// extractionTemperature is the sampling temperature used for structured
// extraction. Low on purpose: extraction wants determinism, not creativity.
const extractionTemperature = 0.1

// CreateJobInput is the DTO for uploading a document and creating a job.
type CreateJobInput struct {
	TenantID      uuid.UUID
	Name          string
	FileName      string
	Data          []byte
	DocumentType  string
	Language      string
	OCRProviderID *uuid.UUID
	LLMProviderID *uuid.UUID
	AutoProcess   bool
}

// JobService defines the processing job management contract.
type JobService interface {
	CreateJob(ctx context.Context, input *CreateJobInput) (*domain.ProcessingJob, error)
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ProcessingJob, int, error)
	// ProcessJob runs the pipeline for a draft job. Precondition failures
	// (wrong state, empty document, unresolvable provider) are returned to the
	// caller without touching job state; failures after the job enters
	// processing land it in error state instead.
	ProcessJob(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error)
	// RunClaimed runs the pipeline for a job the queue worker already moved
	// into processing state. Every failure lands the job in error state.
	RunClaimed(ctx context.Context, job *domain.ProcessingJob)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

type jobService struct {
	jobs          port.JobRepository
	resolver      *registry.Resolver
	storage       port.ObjectStorage
	extractor     port.TextExtractor
	completer     port.Completer
	email         port.EmailSender
	notifyAddress string
	bucket        string
	maxFileSize   int64
}

// NewJobService creates a new JobService implementation. notifyAddress may be
// empty to disable failure notifications.
func NewJobService(
	jobs port.JobRepository,
	resolver *registry.Resolver,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	completer port.Completer,
	emailSender port.EmailSender,
	notifyAddress string,
	bucket string,
	maxFileSize int64,
) JobService {
	return &jobService{
		jobs:          jobs,
		resolver:      resolver,
		storage:       storage,
		extractor:     extractor,
		completer:     completer,
		email:         emailSender,
		notifyAddress: notifyAddress,
		bucket:        bucket,
		maxFileSize:   maxFileSize,
	}
}

func (s *jobService) CreateJob(ctx context.Context, input *CreateJobInput) (*domain.ProcessingJob, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if int64(len(input.Data)) > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}

	jobID := uuid.New()

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("JOB-%s", strings.ToUpper(jobID.String()[:8]))
	}
	docType := input.DocumentType
	if docType == "" {
		docType = domain.DocumentTypeOther
	}
	// Document types are a closed set: only types with a registered record
	// builder may enter the pipeline, so a typo is rejected here instead of
	// producing a record-less job later.
	if !record.Registered(docType) {
		return nil, domain.ErrUnknownDocumentType
	}
	lang := input.Language
	if lang == "" {
		lang = language.DefaultCode
	}

	s3Key := fmt.Sprintf("%s/jobs/%s/%s", input.TenantID, jobID, filepath.Base(input.FileName))
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(input.Data),
		ContentType: contentTypeFor(ext),
		Size:        int64(len(input.Data)),
	}); err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	job := &domain.ProcessingJob{
		ID:            jobID,
		TenantID:      input.TenantID,
		Name:          name,
		FileName:      filepath.Base(input.FileName),
		FileType:      fileType,
		DocumentType:  docType,
		Language:      lang,
		OCRProviderID: input.OCRProviderID,
		LLMProviderID: input.LLMProviderID,
		S3Bucket:      s.bucket,
		S3Key:         s3Key,
		FileSize:      int64(len(input.Data)),
		State:         domain.JobStateDraft,
		AutoProcess:   input.AutoProcess,
	}

	log.Printf("jobService.CreateJob: creating job %s (%s, %s) for tenant %s",
		job.ID, job.Name, job.FileName, job.TenantID)

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error) {
	return s.jobs.GetByID(ctx, tenantID, jobID)
}

func (s *jobService) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.ProcessingJob, int, error) {
	return s.jobs.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *jobService) ProcessJob(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ProcessingJob, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if job.State != domain.JobStateDraft {
		return nil, domain.ErrJobNotDraft
	}

	// Preconditions are checked before the state transition so a rejected run
	// leaves the job in draft, ready to retry once fixed.
	data, ocrProvider, llmProvider, err := s.prepare(ctx, job)
	if err != nil {
		return nil, err
	}

	job.State = domain.JobStateProcessing
	if err := s.jobs.UpdateRun(ctx, job); err != nil {
		return nil, fmt.Errorf("starting job: %w", err)
	}

	s.run(ctx, job, data, ocrProvider, llmProvider)
	return job, nil
}

func (s *jobService) RunClaimed(ctx context.Context, job *domain.ProcessingJob) {
	data, ocrProvider, llmProvider, err := s.prepare(ctx, job)
	if err != nil {
		s.failJob(ctx, job, err.Error())
		return
	}
	s.run(ctx, job, data, ocrProvider, llmProvider)
}

// prepare downloads the document and resolves both providers without touching
// job state.
func (s *jobService) prepare(ctx context.Context, job *domain.ProcessingJob) ([]byte, *domain.Provider, *domain.Provider, error) {
	data, err := s.storage.Download(ctx, job.S3Bucket, job.S3Key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("downloading document: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, nil, domain.ErrEmptyDocument
	}

	ocrProvider, err := s.resolver.ResolveOCR(ctx, job.TenantID, job.OCRProviderID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolving OCR provider: %w", err)
	}
	llmProvider, err := s.resolver.ResolveLLM(ctx, job.TenantID, job.LLMProviderID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolving LLM provider: %w", err)
	}
	return data, ocrProvider, llmProvider, nil
}

// run executes OCR, extraction and record building for a job already in
// processing state. It always leaves the job in a terminal state.
func (s *jobService) run(ctx context.Context, job *domain.ProcessingJob, data []byte, ocrProvider, llmProvider *domain.Provider) {
	defer func() {
		if r := recover(); r != nil {
			s.failJob(ctx, job, fmt.Sprintf("panic during processing: %v", r))
		}
	}()

	log.Printf("jobService.run: job %s ocr=%s llm=%s", job.ID, ocrProvider.Name, llmProvider.Name)

	// The OCR step reads from a staged scratch file, not the in-memory
	// download. The staging directory is released on every exit path.
	staged, cleanup, err := stageDocument(job.FileName, data)
	if err != nil {
		s.failJob(ctx, job, fmt.Sprintf("staging document: %v", err))
		return
	}
	defer cleanup()

	doc, err := os.Open(staged)
	if err != nil {
		s.failJob(ctx, job, fmt.Sprintf("staging document: %v", err))
		return
	}
	ocrResult, err := s.extractor.Extract(ctx, ocrProvider, ocr.Input{
		Content:  doc,
		FileName: job.FileName,
		Language: job.Language,
	})
	_ = doc.Close()
	if err != nil {
		s.failJob(ctx, job, err.Error())
		return
	}
	job.OCRText = ocrResult.Text
	if strings.TrimSpace(job.OCRText) == "" {
		s.failJob(ctx, job, "no text could be extracted from the document")
		return
	}

	temperature := extractionTemperature
	llmResult, err := s.completer.Complete(ctx, llmProvider, prompt.BuildExtraction(job.DocumentType, job.OCRText), llm.Options{
		Temperature:    &temperature,
		ResponseFormat: llm.ResponseFormatJSON,
	})
	if err != nil {
		s.failJob(ctx, job, err.Error())
		return
	}
	if llmResult.Parsed == nil {
		s.failJob(ctx, job, "model response is not valid JSON")
		return
	}
	job.ParsedData = llmResult.Parsed

	builder, err := record.Lookup(job.DocumentType)
	if err != nil {
		// CreateJob validates against the registry, so this only fires for
		// jobs persisted before a builder was unregistered.
		s.failJob(ctx, job, fmt.Sprintf("document type %s is not implemented", job.DocumentType))
		return
	}
	ref, err := builder.Build(ctx, job.TenantID, job.ID, job.ParsedData)
	if err != nil {
		s.failJob(ctx, job, fmt.Sprintf("building record: %v", err))
		return
	}
	job.RecordRef = ref

	now := time.Now().UTC()
	job.State = domain.JobStateDone
	job.ErrorMessage = ""
	job.ProcessedAt = &now
	if err := s.jobs.UpdateRun(ctx, job); err != nil {
		log.Printf("jobService.run: failed to save results for job %s: %v", job.ID, err)
		return
	}
	log.Printf("jobService.run: job %s done (record=%s)", job.ID, job.RecordRef)
}

// failJob moves the job into error state and sends the failure notification.
// Notification failures are logged, never propagated.
func (s *jobService) failJob(ctx context.Context, job *domain.ProcessingJob, errMsg string) {
	log.Printf("jobService.failJob: job %s failed: %s", job.ID, errMsg)

	now := time.Now().UTC()
	job.State = domain.JobStateError
	job.ErrorMessage = errMsg
	job.ProcessedAt = &now
	if err := s.jobs.UpdateRun(ctx, job); err != nil {
		log.Printf("jobService.failJob: failed to update job %s: %v", job.ID, err)
	}

	if s.email != nil && s.notifyAddress != "" {
		if err := s.email.SendJobFailedEmail(ctx, s.notifyAddress, job.Name, errMsg); err != nil {
			log.Printf("jobService.failJob: failed to send notification for job %s: %v", job.ID, err)
		}
	}
}

func (s *jobService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, job.S3Bucket, job.S3Key); err != nil {
		log.Printf("jobService.Delete: failed to delete object %s/%s: %v", job.S3Bucket, job.S3Key, err)
	}
	return s.jobs.Delete(ctx, tenantID, jobID)
}

// stageDocument writes the document to a scratch file the OCR step reads
// from. The returned cleanup releases the staging directory.
func stageDocument(fileName string, data []byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "docpipe-job-")
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}
	return path, func() { _ = os.RemoveAll(dir) }, nil
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
