package port

import (
	"context"

	"docpipe/internal/domain"
	"docpipe/internal/llm"
	"docpipe/internal/ocr"
)

// TextExtractor abstracts the OCR adapter family.
type TextExtractor interface {
	Extract(ctx context.Context, p *domain.Provider, in ocr.Input) (*ocr.Result, error)
}

// Completer abstracts the LLM adapter family.
type Completer interface {
	Complete(ctx context.Context, p *domain.Provider, prompt string, opts llm.Options) (*llm.Result, error)
}
