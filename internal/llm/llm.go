package llm

import (
	"context"
	"errors"
)

// ErrExtraction wraps any failure from the extraction model. Callers
// convert it into a failed document status, not a request error.
var ErrExtraction = errors.New("extraction failed")

// Extraction is the structured data the model pulled out of a document.
type Extraction struct {
	DocumentType string
	Fields       map[string]any
}

// Client extracts structured medical data from document text. Model
// internals are opaque to callers.
type Client interface {
	ExtractMedicalData(ctx context.Context, text string) (Extraction, error)
}

// PlaceholderClient stands in when no model is configured. Every call
// fails, which surfaces as a failed document rather than a crash.
type PlaceholderClient struct{}

func (PlaceholderClient) ExtractMedicalData(ctx context.Context, text string) (Extraction, error) {
	_ = ctx
	_ = text
	return Extraction{}, errors.New("llm client not configured")
}
