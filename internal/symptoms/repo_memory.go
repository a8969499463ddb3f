package symptoms

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used in dev mode
// and as a test double.
type MemoryRepo struct {
	mu       sync.RWMutex
	symptoms map[string]Symptom // symptomID -> symptom
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{symptoms: make(map[string]Symptom)}
}

func (r *MemoryRepo) Create(ctx context.Context, symptom Symptom) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symptoms[symptom.ID] = symptom
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, symptomID string) (Symptom, error) {
	if err := ctx.Err(); err != nil {
		return Symptom{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	symptom, ok := r.symptoms[symptomID]
	if !ok || symptom.UserID != userID {
		return Symptom{}, ErrNotFound
	}
	return symptom, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Symptom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	r.mu.RLock()
	var result []Symptom
	for _, symptom := range r.symptoms {
		if symptom.UserID == userID {
			result = append(result, symptom)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OnsetAt.Equal(result[j].OnsetAt) {
			return result[i].OnsetAt.After(result[j].OnsetAt)
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

func (r *MemoryRepo) Delete(ctx context.Context, userID, symptomID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	symptom, ok := r.symptoms[symptomID]
	if !ok || symptom.UserID != userID {
		return ErrNotFound
	}
	delete(r.symptoms, symptomID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
