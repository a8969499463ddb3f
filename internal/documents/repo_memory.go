package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used in dev mode and
// as a test double.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document // documentID -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.ProcessingStatus == "" {
		doc.ProcessingStatus = StatusPending
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

// Get returns a document by ID without owner scoping.
func (r *MemoryRepo) Get(ctx context.Context, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// GetByID returns a document by ID for a user. Foreign ownership reads
// as not-found.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	doc, err := r.Get(ctx, documentID)
	if err != nil {
		return Document{}, err
	}
	if doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByUser returns a user's documents newest upload first, id
// descending on ties.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	var docs []Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			docs = append(docs, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].ID > docs[j].ID
	})
	return page(docs, limit, offset), nil
}

// FindByHash returns the earliest document matching the content hash for
// a user.
func (r *MemoryRepo) FindByHash(ctx context.Context, userID, hash string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if hash == "" {
		return Document{}, ErrNotFound
	}

	r.mu.RLock()
	var matches []Document
	for _, doc := range r.docs {
		if doc.UserID == userID && doc.FileHash == hash {
			matches = append(matches, doc)
		}
	}
	r.mu.RUnlock()

	if len(matches) == 0 {
		return Document{}, ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].UploadedAt.Equal(matches[j].UploadedAt) {
			return matches[i].UploadedAt.Before(matches[j].UploadedAt)
		}
		return matches[i].ID < matches[j].ID
	})
	return matches[0], nil
}

// ListByStatus returns documents in the given status oldest upload
// first, id ascending on ties.
func (r *MemoryRepo) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	var docs []Document
	for _, doc := range r.docs {
		if doc.ProcessingStatus == status {
			docs = append(docs, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.Before(docs[j].UploadedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return page(docs, limit, offset), nil
}

// UpdateStatus sets the status and returns the updated document. No
// transition validation happens here.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, documentID string, status Status) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	doc.ProcessingStatus = status
	r.docs[documentID] = doc
	return doc, nil
}

// Delete removes a document for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok || doc.UserID != userID {
		return ErrNotFound
	}
	delete(r.docs, documentID)
	return nil
}

func page(docs []Document, limit, offset int) []Document {
	if offset >= len(docs) {
		return []Document{}
	}
	end := len(docs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return docs[offset:end]
}

var _ Repo = (*MemoryRepo)(nil)
