package documents

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedDoc(t *testing.T, repo Repo, id, userID string, status Status, uploadedAt time.Time) Document {
	t.Helper()
	doc := Document{
		ID:               id,
		UserID:           userID,
		OriginalFilename: id + ".pdf",
		FileHash:         "hash-" + id,
		ProcessingStatus: status,
		UploadedAt:       uploadedAt,
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create %s: %v", id, err)
	}
	return doc
}

func TestMemoryRepoOwnerScoping(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	doc := seedDoc(t, repo, "doc-1", "user-a", StatusPending, time.Now())

	got, err := repo.GetByID(ctx, "user-a", doc.ID)
	if err != nil {
		t.Fatalf("GetByID owner: %v", err)
	}
	if got.ID != doc.ID {
		t.Fatalf("expected %s, got %s", doc.ID, got.ID)
	}

	// A real id owned by someone else reads as not-found.
	if _, err := repo.GetByID(ctx, "user-b", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestMemoryRepoListByUserNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedDoc(t, repo, "doc-1", "user-a", StatusPending, base)
	seedDoc(t, repo, "doc-2", "user-a", StatusPending, base.Add(time.Hour))
	seedDoc(t, repo, "doc-3", "user-a", StatusPending, base.Add(2*time.Hour))
	seedDoc(t, repo, "other", "user-b", StatusPending, base.Add(3*time.Hour))

	docs, err := repo.ListByUser(ctx, "user-a", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].UploadedAt.After(docs[i-1].UploadedAt) {
			t.Fatalf("expected non-increasing uploaded_at, got %v before %v", docs[i-1].UploadedAt, docs[i].UploadedAt)
		}
	}
	if docs[0].ID != "doc-3" {
		t.Fatalf("expected newest first, got %s", docs[0].ID)
	}
}

func TestMemoryRepoListByUserTieBreakDeterministic(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedDoc(t, repo, fmt.Sprintf("doc-%d", i), "user-a", StatusPending, ts)
	}

	first, err := repo.ListByUser(ctx, "user-a", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	second, err := repo.ListByUser(ctx, "user-a", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering not deterministic at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	// id descending on equal timestamps
	if first[0].ID != "doc-4" {
		t.Fatalf("expected doc-4 first on tie, got %s", first[0].ID)
	}
}

func TestMemoryRepoListByStatusOldestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedDoc(t, repo, "doc-new", "user-a", StatusPending, base.Add(time.Hour))
	seedDoc(t, repo, "doc-old", "user-b", StatusPending, base)
	seedDoc(t, repo, "doc-done", "user-a", StatusCompleted, base)

	docs, err := repo.ListByStatus(ctx, StatusPending, 10, 0)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 pending documents, got %d", len(docs))
	}
	if docs[0].ID != "doc-old" {
		t.Fatalf("expected FIFO order, got %s first", docs[0].ID)
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].UploadedAt.Before(docs[i-1].UploadedAt) {
			t.Fatal("expected non-decreasing uploaded_at")
		}
	}
}

func TestMemoryRepoFindByHash(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	doc := seedDoc(t, repo, "doc-1", "user-a", StatusPending, time.Now())

	got, err := repo.FindByHash(ctx, "user-a", doc.FileHash)
	if err != nil {
		t.Fatalf("FindByHash: %v", err)
	}
	if got.ID != doc.ID {
		t.Fatalf("expected %s, got %s", doc.ID, got.ID)
	}

	// Same hash under a different owner is not a duplicate.
	if _, err := repo.FindByHash(ctx, "user-b", doc.FileHash); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}
	if _, err := repo.FindByHash(ctx, "user-a", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty hash, got %v", err)
	}
}

func TestMemoryRepoUpdateStatus(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	doc := seedDoc(t, repo, "doc-1", "user-a", StatusPending, time.Now())

	updated, err := repo.UpdateStatus(ctx, doc.ID, StatusProcessing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.ProcessingStatus != StatusProcessing {
		t.Fatalf("expected processing, got %s", updated.ProcessingStatus)
	}

	if _, err := repo.UpdateStatus(ctx, "missing", StatusProcessing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
