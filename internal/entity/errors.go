package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Model errors
	ErrNoWorkflow = errors.New("no workflow has been generated in this session")
	ErrNoProposal = errors.New("no proposal has been generated in this session")
	ErrRowNotFound = errors.New("row not found")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Feature toggles
	ErrEnrichmentDisabled = errors.New("company enrichment is not configured")
)

// ExtractionError means no structured payload region could be located in the
// raw model response. Recoverable: the raw text is carried so the caller can
// surface it for manual inspection.
type ExtractionError struct {
	RawText string
}

func (e *ExtractionError) Error() string {
	return "no structured payload found in model response"
}

// SchemaError means a payload region was located but failed shape or type
// validation. It carries a field-level diagnostic and the offending payload.
type SchemaError struct {
	Field   string
	Reason  string
	Payload string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid payload: %s", e.Reason)
	}
	return fmt.Sprintf("invalid payload: field '%s': %s", e.Field, e.Reason)
}

// ProviderError wraps a failure reported by the generative service or its
// transport. Recoverable per request; never retried beyond the transport
// retry policy.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generative service error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
