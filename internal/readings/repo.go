package readings

import "context"

// Repo persists readings. All lookups are owner-scoped; foreign rows
// read as not-found.
type Repo interface {
	Create(ctx context.Context, reading Reading) error
	GetByID(ctx context.Context, userID, readingID string) (Reading, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reading, error)
	Delete(ctx context.Context, userID, readingID string) error
}
