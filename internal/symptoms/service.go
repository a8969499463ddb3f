package symptoms

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validates and persists symptom logs.
type Service struct {
	Repo Repo
}

// NewSymptom carries the fields a caller may set when logging a
// symptom.
type NewSymptom struct {
	Name     string
	Severity int
	Note     string
	OnsetAt  *time.Time
}

// Log validates and stores a symptom entry for the user.
func (s *Service) Log(ctx context.Context, userID string, input NewSymptom) (Symptom, error) {
	if strings.TrimSpace(userID) == "" {
		return Symptom{}, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Symptom{}, ErrInvalidInput
	}
	if input.Severity < 1 || input.Severity > 10 {
		return Symptom{}, ErrInvalidInput
	}

	onsetAt := time.Now().UTC()
	if input.OnsetAt != nil {
		onsetAt = input.OnsetAt.UTC()
	}

	symptom := Symptom{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Severity: input.Severity,
		Note:     strings.TrimSpace(input.Note),
		OnsetAt:  onsetAt,
	}
	if err := s.Repo.Create(ctx, symptom); err != nil {
		return Symptom{}, err
	}
	return symptom, nil
}

// Get returns one symptom owned by the user.
func (s *Service) Get(ctx context.Context, userID, symptomID string) (Symptom, error) {
	if symptomID == "" {
		return Symptom{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, symptomID)
}

// List returns the user's symptoms newest onset first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Symptom, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes one symptom owned by the user.
func (s *Service) Delete(ctx context.Context, userID, symptomID string) error {
	if symptomID == "" {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, symptomID)
}
