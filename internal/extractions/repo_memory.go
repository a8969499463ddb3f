package extractions

import (
	"context"
	"errors"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]ExtractedData // documentID -> result
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]ExtractedData)}
}

// Create stores an extraction result, rejecting a second result for the
// same document.
func (r *MemoryRepo) Create(ctx context.Context, data ExtractedData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[data.DocumentID]; exists {
		return errors.New("extraction result already exists for document")
	}
	if data.DocumentType == "" {
		data.DocumentType = TypeOther
	}
	r.data[data.DocumentID] = data
	return nil
}

// GetByDocument returns the extraction result for a document, scoped to
// its owner.
func (r *MemoryRepo) GetByDocument(ctx context.Context, userID, documentID string) (ExtractedData, error) {
	if err := ctx.Err(); err != nil {
		return ExtractedData{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.data[documentID]
	if !ok || data.UserID != userID {
		return ExtractedData{}, ErrNotFound
	}
	return data, nil
}

var _ Repo = (*MemoryRepo)(nil)
