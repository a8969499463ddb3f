package users

import (
	"context"
	"errors"
	"testing"
)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func slicePtr(s []string) *[]string { return &s }

func TestGetOrCreateCreatesOnFirstSight(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	user, err := svc.GetOrCreate(context.Background(), "user-1", "u@example.com", "Pat")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if user.ID != "user-1" || user.Email != "u@example.com" || user.Name != "Pat" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	first, err := svc.GetOrCreate(context.Background(), "user-1", "u@example.com", "Pat")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	again, err := svc.GetOrCreate(context.Background(), "user-1", "other@example.com", "Other")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if again.Email != first.Email || again.Name != first.Name {
		t.Fatalf("existing profile overwritten: %+v", again)
	}
}

func TestUpdateProfileAppliesPartialUpdate(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	user, err := svc.UpdateProfile(context.Background(), "user-1", "u@example.com", ProfileUpdate{
		Name:        strPtr("Pat Doe"),
		DateOfBirth: strPtr("1990-04-15"),
		HeightCm:    floatPtr(172),
		Conditions:  slicePtr([]string{"asthma", " hypertension "}),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Pat Doe" {
		t.Fatalf("name = %q", user.Name)
	}
	if user.DateOfBirth == nil || user.DateOfBirth.Format("2006-01-02") != "1990-04-15" {
		t.Fatalf("dateOfBirth = %v", user.DateOfBirth)
	}
	if user.HeightCm == nil || *user.HeightCm != 172 {
		t.Fatalf("heightCm = %v", user.HeightCm)
	}
	if len(user.Conditions) != 2 || user.Conditions[1] != "hypertension" {
		t.Fatalf("conditions = %v", user.Conditions)
	}
	if user.WeightKg != nil {
		t.Fatalf("weightKg should remain unset, got %v", user.WeightKg)
	}
}

func TestUpdateProfileRejectsBadValues(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	cases := []ProfileUpdate{
		{DateOfBirth: strPtr("15/04/1990")},
		{HeightCm: floatPtr(-1)},
		{WeightKg: floatPtr(0)},
	}
	for _, update := range cases {
		if _, err := svc.UpdateProfile(context.Background(), "user-1", "", update); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("update %+v: err = %v, want ErrInvalidInput", update, err)
		}
	}
}
