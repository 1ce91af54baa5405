package domain

// ProviderKind separates OCR backends from LLM backends. Defaults are resolved
// per kind, so a tenant has one default OCR provider and one default LLM
// provider independently.
type ProviderKind string

const (
	ProviderKindOCR ProviderKind = "ocr"
	ProviderKindLLM ProviderKind = "llm"
)

// ProviderType identifies a concrete backend protocol within a kind.
type ProviderType string

const (
	// OCR backends.
	ProviderOCRSpace ProviderType = "ocrspace"
	ProviderOpenOCR  ProviderType = "openocr"

	// LLM backends. Groq and OpenAI share the chat-completions wire shape.
	ProviderGroq      ProviderType = "groq"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderCustom    ProviderType = "custom"
)

// ValidProviderTypes lists the closed set of types accepted per kind. Unknown
// types are rejected when a provider is registered, never at call time.
var ValidProviderTypes = map[ProviderKind]map[ProviderType]bool{
	ProviderKindOCR: {
		ProviderOCRSpace: true,
		ProviderOpenOCR:  true,
	},
	ProviderKindLLM: {
		ProviderGroq:      true,
		ProviderOpenAI:    true,
		ProviderAnthropic: true,
		ProviderCustom:    true,
	},
}

// JobState is the processing job lifecycle. Draft is initial; done and error
// are terminal. A failed document is reprocessed by creating a new job, never
// by resurrecting a terminal one.
type JobState string

const (
	JobStateDraft      JobState = "draft"
	JobStateProcessing JobState = "processing"
	JobStateDone       JobState = "done"
	JobStateError      JobState = "error"
)

// Terminal reports whether the state permits no further transitions.
func (s JobState) Terminal() bool {
	return s == JobStateDone || s == JobStateError
}

// FileType classifies the uploaded document.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeImage FileType = "image"
)

// AllowedExtensions maps upload file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeImage,
	"jpeg": FileTypeImage,
	"png":  FileTypeImage,
	"gif":  FileTypeImage,
	"bmp":  FileTypeImage,
	"tiff": FileTypeImage,
	"tif":  FileTypeImage,
}

// DocumentTypeOther is the fallback document type. It uses the generic
// extraction prompt and is wired with the no-op record builder, so jobs of
// this type finish with extracted data but no domain record.
const DocumentTypeOther = "other"

// DocumentTypeVendorBill produces a vendor bill record.
const DocumentTypeVendorBill = "vendor_bill"
