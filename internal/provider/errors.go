// Package provider holds the failure taxonomy shared by the OCR and LLM
// adapter families. Adapters never panic or leak transport internals; every
// failure path returns one of these types so the orchestrator alone decides
// what is job-fatal.
package provider

import "fmt"

// ConfigurationError indicates a provider record is unusable as configured
// (missing credentials, unknown type). Not retryable.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s configuration error: %s", e.Provider, e.Reason)
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(provider, reason string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Reason: reason}
}

// TransportError indicates the HTTP call itself failed (connection refused,
// timeout). No retries are attempted; the failure surfaces immediately.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError.
func NewTransportError(provider string, err error) *TransportError {
	return &TransportError{Provider: provider, Err: err}
}

// UpstreamError indicates the backend answered but reported a failure: a
// non-2xx status, or a 2xx body carrying the provider's own error message.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s processing failed: %s", e.Provider, e.Message)
}

// NewUpstreamError creates an UpstreamError for a non-2xx response.
func NewUpstreamError(provider string, status int, message string) *UpstreamError {
	return &UpstreamError{Provider: provider, StatusCode: status, Message: message}
}

// NewProviderReportedError creates an UpstreamError for a 2xx response whose
// body carries a provider-reported failure.
func NewProviderReportedError(provider, message string) *UpstreamError {
	return &UpstreamError{Provider: provider, Message: message}
}
