package record

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"docpipe/internal/port"
)

type noopBuilder struct{}

// NewNoopBuilder returns a builder that accepts any parsed data and creates
// no record. Used for document types that only need extraction.
func NewNoopBuilder() port.RecordBuilder {
	return noopBuilder{}
}

func (noopBuilder) Build(_ context.Context, _, _ uuid.UUID, _ json.RawMessage) (string, error) {
	return "", nil
}
