// Package record maps document types to their domain-record builders.
package record

import (
	"fmt"

	"docpipe/internal/port"
)

// registry of record builders by document type, populated explicitly via
// Register during wiring.
var builders = map[string]port.RecordBuilder{}

// Register registers the builder for a document type.
func Register(documentType string, builder port.RecordBuilder) {
	builders[documentType] = builder
}

// Lookup returns the builder for a document type.
func Lookup(documentType string) (port.RecordBuilder, error) {
	b, ok := builders[documentType]
	if !ok {
		return nil, fmt.Errorf("no record builder for document type: %s", documentType)
	}
	return b, nil
}

// Registered reports whether a builder exists for the document type.
func Registered(documentType string) bool {
	_, ok := builders[documentType]
	return ok
}
