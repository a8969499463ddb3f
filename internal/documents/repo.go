package documents

import "context"

// Repo defines persistence operations for documents. Reads are scoped
// to the owning user except Get and UpdateStatus, which serve the
// processing worker.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	Get(ctx context.Context, documentID string) (Document, error)
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
	FindByHash(ctx context.Context, userID, hash string) (Document, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Document, error)
	UpdateStatus(ctx context.Context, documentID string, status Status) (Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}
