package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Provider is a configured integration record pointing at one external OCR or
// LLM backend. A single struct covers both kinds; Model, MaxTokens and
// Temperature are only meaningful for LLM providers.
type Provider struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	TenantID    uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	Name        string       `db:"name" json:"name"`
	Kind        ProviderKind `db:"kind" json:"kind"`
	Type        ProviderType `db:"provider_type" json:"provider_type"`
	Sequence    int          `db:"sequence" json:"sequence"`
	APIKey      string       `db:"api_key" json:"-"`
	Endpoint    string       `db:"endpoint" json:"endpoint"`
	Model       string       `db:"model" json:"model,omitempty"`
	MaxTokens   int          `db:"max_tokens" json:"max_tokens,omitempty"`
	Temperature float64      `db:"temperature" json:"temperature,omitempty"`
	IsActive    bool         `db:"is_active" json:"is_active"`
	IsDefault   bool         `db:"is_default" json:"is_default"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// MaskedKey returns the API key with all but the last four characters hidden,
// safe for log output.
func (p *Provider) MaskedKey() string {
	if len(p.APIKey) <= 4 {
		return "****"
	}
	return "****" + p.APIKey[len(p.APIKey)-4:]
}

// ProcessingJob is one run of the document pipeline over a single input
// document. OCRText and ParsedData are written once per stage and kept for
// audit after the job reaches a terminal state.
type ProcessingJob struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Name          string          `db:"name" json:"name"`
	FileName      string          `db:"file_name" json:"file_name"`
	FileType      FileType        `db:"file_type" json:"file_type"`
	DocumentType  string          `db:"document_type" json:"document_type"`
	Language      string          `db:"language" json:"language"`
	OCRProviderID *uuid.UUID      `db:"ocr_provider_id" json:"ocr_provider_id"`
	LLMProviderID *uuid.UUID      `db:"llm_provider_id" json:"llm_provider_id"`
	S3Bucket      string          `db:"s3_bucket" json:"-"`
	S3Key         string          `db:"s3_key" json:"-"`
	FileSize      int64           `db:"file_size" json:"file_size"`
	State         JobState        `db:"state" json:"state"`
	AutoProcess   bool            `db:"auto_process" json:"auto_process"`
	OCRText       string          `db:"ocr_text" json:"ocr_text,omitempty"`
	ParsedData    json.RawMessage `db:"parsed_data" json:"parsed_data,omitempty"`
	ErrorMessage  string          `db:"error_message" json:"error_message,omitempty"`
	RecordRef     string          `db:"record_ref" json:"record_ref,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
	ProcessedAt   *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}

// Vendor is a supplier party extracted from vendor bills.
type Vendor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// VendorBill is the domain record produced from a parsed vendor bill document.
type VendorBill struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	TenantID      uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	JobID         uuid.UUID        `db:"job_id" json:"job_id"`
	VendorID      uuid.UUID        `db:"vendor_id" json:"vendor_id"`
	VendorName    string           `db:"vendor_name" json:"vendor_name"`
	InvoiceNumber string           `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time        `db:"invoice_date" json:"invoice_date"`
	Total         float64          `db:"total" json:"total"`
	TotalTax      float64          `db:"total_tax" json:"total_tax"`
	TotalDiscount float64          `db:"total_discount" json:"total_discount"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	Lines         []VendorBillLine `db:"-" json:"lines,omitempty"`
}

// VendorBillLine is a single line item on a vendor bill. Tax and discount are
// stored as synthetic lines, mirroring how the bill totals are assembled.
type VendorBillLine struct {
	ID          uuid.UUID `db:"id" json:"id"`
	BillID      uuid.UUID `db:"bill_id" json:"bill_id"`
	Product     string    `db:"product" json:"product"`
	Description string    `db:"description" json:"description"`
	Quantity    float64   `db:"quantity" json:"quantity"`
	PriceUnit   float64   `db:"price_unit" json:"price_unit"`
	Subtotal    float64   `db:"subtotal" json:"subtotal"`
}
