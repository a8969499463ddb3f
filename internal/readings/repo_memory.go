package readings

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used in dev mode
// and as a test double.
type MemoryRepo struct {
	mu       sync.RWMutex
	readings map[string]Reading // readingID -> reading
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{readings: make(map[string]Reading)}
}

func (r *MemoryRepo) Create(ctx context.Context, reading Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings[reading.ID] = reading
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, readingID string) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	reading, ok := r.readings[readingID]
	if !ok || reading.UserID != userID {
		return Reading{}, ErrNotFound
	}
	return reading, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	var result []Reading
	for _, reading := range r.readings {
		if reading.UserID == userID {
			result = append(result, reading)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].RecordedAt.Equal(result[j].RecordedAt) {
			return result[i].RecordedAt.After(result[j].RecordedAt)
		}
		return result[i].ID > result[j].ID
	})

	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, readingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	reading, ok := r.readings[readingID]
	if !ok || reading.UserID != userID {
		return ErrNotFound
	}
	delete(r.readings, readingID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
