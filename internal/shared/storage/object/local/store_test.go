package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"medhub-backend/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	path, size, mime, err := store.Save(ctx, "user-1", "report.txt", strings.NewReader("lab results"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("lab results")) {
		t.Fatalf("expected size %d, got %d", len("lab results"), size)
	}
	if mime == "" {
		t.Fatal("expected detected mime type")
	}

	rc, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "lab results" {
		t.Fatalf("unexpected contents %q", data)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, path); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSaveGeneratesFreshPathsForIdenticalContent(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	first, _, _, err := store.Save(ctx, "user-1", "report.txt", strings.NewReader("same bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _, _, err := store.Save(ctx, "user-1", "report.txt", strings.NewReader("same bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct storage paths, both were %q", first)
	}
}

func TestDeleteMissingObject(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Delete(context.Background(), "abc/missing.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}
