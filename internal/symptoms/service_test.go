package symptoms

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLogSymptom(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	symptom, err := svc.Log(context.Background(), "user-1", NewSymptom{
		Name:     "  Headache ",
		Severity: 4,
		Note:     "after lunch",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if symptom.ID == "" {
		t.Fatal("expected generated id")
	}
	if symptom.Name != "Headache" {
		t.Fatalf("name = %q", symptom.Name)
	}
	if symptom.OnsetAt.IsZero() {
		t.Fatal("expected OnsetAt default")
	}
}

func TestLogRejectsInvalidSeverity(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	for _, severity := range []int{0, -1, 11} {
		_, err := svc.Log(context.Background(), "user-1", NewSymptom{Name: "Nausea", Severity: severity})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("severity %d: err = %v, want ErrInvalidInput", severity, err)
		}
	}
}

func TestLogRejectsEmptyName(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	_, err := svc.Log(context.Background(), "user-1", NewSymptom{Name: "   ", Severity: 3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestListOwnerScopedNewestFirst(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	base := time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		onset := base.Add(time.Duration(i) * time.Hour)
		_, err := svc.Log(context.Background(), "user-1", NewSymptom{
			Name:     "Fatigue",
			Severity: 2,
			OnsetAt:  &onset,
		})
		if err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
	if _, err := svc.Log(context.Background(), "user-2", NewSymptom{Name: "Cough", Severity: 5}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	result, err := svc.List(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("len = %d, want 3", len(result))
	}
	for i := 1; i < len(result); i++ {
		if result[i].OnsetAt.After(result[i-1].OnsetAt) {
			t.Fatal("not newest first")
		}
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	symptom, err := svc.Log(context.Background(), "user-1", NewSymptom{Name: "Dizziness", Severity: 3})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-2", symptom.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user delete err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), "user-1", symptom.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
