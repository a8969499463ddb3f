package extract

import (
	"context"
	"strings"
	"testing"
)

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes(context.Background(), []byte("HbA1c: 5.4%"), "text/plain; charset=utf-8", "labs.txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "HbA1c: 5.4%" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestFromBytesExtensionFallback(t *testing.T) {
	text, err := FromBytes(context.Background(), []byte("notes"), "application/octet-stream", "notes.txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "notes" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestFromBytesRejectsUnsupported(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "scan.png")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported mime type error, got %v", err)
	}
}

func TestFromBytesRejectsEmpty(t *testing.T) {
	if _, err := FromBytes(context.Background(), nil, "text/plain", "empty.txt"); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestFromBytesRejectsCorruptPDF(t *testing.T) {
	if _, err := FromBytes(context.Background(), []byte("not a pdf"), "application/pdf", "labs.pdf"); err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}
