package extractions

import "time"

// DocumentType classifies what kind of medical document was extracted.
type DocumentType string

const (
	TypeLabReport    DocumentType = "lab_report"
	TypePrescription DocumentType = "prescription"
	TypeOther        DocumentType = "other"
)

// ExtractedData is the structured result attached to a document after
// successful processing. A document has at most one.
type ExtractedData struct {
	ID           string         `json:"id"`
	DocumentID   string         `json:"documentId"`
	UserID       string         `json:"userId"`
	DocumentType DocumentType   `json:"documentType"`
	Fields       map[string]any `json:"fields,omitempty"`
	ExtractedAt  time.Time      `json:"extractedAt"`
}
