package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// RecordBuilder turns structured JSON extracted from a document into a domain
// record and returns an opaque reference to it (e.g. "vendor.bill,<id>").
// Builders are selected per document type through the record registry; the
// pipeline never hardcodes a document type.
type RecordBuilder interface {
	Build(ctx context.Context, tenantID, jobID uuid.UUID, parsed json.RawMessage) (string, error)
}
