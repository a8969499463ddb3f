package users

import "time"

// User is a profile record keyed by the verified auth subject.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email,omitempty"`
	Name        string     `json:"name,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	HeightCm    *float64   `json:"heightCm,omitempty"`
	WeightKg    *float64   `json:"weightKg,omitempty"`
	Conditions  []string   `json:"conditions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
