package symptoms

import "context"

// Repo persists symptoms. All lookups are owner-scoped; foreign rows
// read as not-found.
type Repo interface {
	Create(ctx context.Context, symptom Symptom) error
	GetByID(ctx context.Context, userID, symptomID string) (Symptom, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Symptom, error)
	Delete(ctx context.Context, userID, symptomID string) error
}
