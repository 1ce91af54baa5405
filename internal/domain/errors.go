package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrProviderNotFound    = errors.New("no provider configured for tenant")
	ErrUnknownProviderType = errors.New("unknown provider type")
	ErrProviderInactive    = errors.New("Provider is not active")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrJobNotFound         = errors.New("processing job not found")
	ErrJobNotDraft         = errors.New("job has already been processed; create a new job to retry")
	ErrEmptyDocument       = errors.New("job has no document content")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrBillNotFound        = errors.New("vendor bill not found")
	ErrTenantInactive      = errors.New("tenant is inactive")
)
