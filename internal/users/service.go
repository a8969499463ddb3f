package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrInvalidInput indicates a profile update that fails validation.
var ErrInvalidInput = errors.New("invalid profile input")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// GetOrCreate returns the profile for the auth subject, creating a
// minimal record from the token claims on first sight.
func (s *Service) GetOrCreate(ctx context.Context, userID, email, name string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	user = User{ID: userID, Email: email, Name: name}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdate struct {
	Name        *string   `json:"name"`
	DateOfBirth *string   `json:"dateOfBirth"`
	HeightCm    *float64  `json:"heightCm"`
	WeightKg    *float64  `json:"weightKg"`
	Conditions  *[]string `json:"conditions"`
}

// UpdateProfile applies a partial update to the subject's profile and
// returns the stored record.
func (s *Service) UpdateProfile(ctx context.Context, userID, email string, update ProfileUpdate) (User, error) {
	user, err := s.GetOrCreate(ctx, userID, email, "")
	if err != nil {
		return User{}, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.DateOfBirth != nil {
		dob, err := parseDate(*update.DateOfBirth)
		if err != nil {
			return User{}, ErrInvalidInput
		}
		user.DateOfBirth = dob
	}
	if update.HeightCm != nil {
		if *update.HeightCm <= 0 || *update.HeightCm > 300 {
			return User{}, ErrInvalidInput
		}
		user.HeightCm = update.HeightCm
	}
	if update.WeightKg != nil {
		if *update.WeightKg <= 0 || *update.WeightKg > 700 {
			return User{}, ErrInvalidInput
		}
		user.WeightKg = update.WeightKg
	}
	if update.Conditions != nil {
		conditions := make([]string, 0, len(*update.Conditions))
		for _, c := range *update.Conditions {
			if trimmed := strings.TrimSpace(c); trimmed != "" {
				conditions = append(conditions, trimmed)
			}
		}
		user.Conditions = conditions
	}

	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}
