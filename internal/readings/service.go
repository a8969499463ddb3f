package readings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validates and persists health readings.
type Service struct {
	Repo Repo
}

// NewReading carries the fields a caller may set when recording a
// reading.
type NewReading struct {
	Type       string
	Value      *float64
	Unit       string
	Systolic   *int
	Diastolic  *int
	Note       string
	RecordedAt *time.Time
}

// Record validates and stores a new reading for the user. Blood
// pressure readings require both systolic and diastolic; every other
// type requires a scalar value.
func (s *Service) Record(ctx context.Context, userID string, input NewReading) (Reading, error) {
	if strings.TrimSpace(userID) == "" {
		return Reading{}, ErrInvalidInput
	}
	readingType := strings.TrimSpace(strings.ToLower(input.Type))
	if readingType == "" {
		return Reading{}, ErrInvalidInput
	}

	if readingType == TypeBloodPressure {
		if input.Systolic == nil || input.Diastolic == nil {
			return Reading{}, ErrInvalidInput
		}
		if *input.Systolic <= 0 || *input.Systolic > 400 || *input.Diastolic <= 0 || *input.Diastolic > 400 {
			return Reading{}, ErrInvalidInput
		}
	} else {
		if input.Value == nil {
			return Reading{}, ErrInvalidInput
		}
	}

	recordedAt := time.Now().UTC()
	if input.RecordedAt != nil {
		recordedAt = input.RecordedAt.UTC()
	}

	reading := Reading{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       readingType,
		Value:      input.Value,
		Unit:       strings.TrimSpace(input.Unit),
		Systolic:   input.Systolic,
		Diastolic:  input.Diastolic,
		Note:       strings.TrimSpace(input.Note),
		RecordedAt: recordedAt,
	}
	if err := s.Repo.Create(ctx, reading); err != nil {
		return Reading{}, err
	}
	return reading, nil
}

// Get returns one reading owned by the user.
func (s *Service) Get(ctx context.Context, userID, readingID string) (Reading, error) {
	if readingID == "" {
		return Reading{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, readingID)
}

// List returns the user's readings newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Reading, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes one reading owned by the user.
func (s *Service) Delete(ctx context.Context, userID, readingID string) error {
	if readingID == "" {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, readingID)
}
