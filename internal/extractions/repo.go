package extractions

import "context"

// Repo defines persistence operations for extraction results.
type Repo interface {
	Create(ctx context.Context, data ExtractedData) error
	GetByDocument(ctx context.Context, userID, documentID string) (ExtractedData, error)
}
