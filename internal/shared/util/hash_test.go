package util

import (
	"strings"
	"testing"
)

func TestSHA256ReaderKnownValue(t *testing.T) {
	// sha256("abc")
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	got, err := SHA256Reader(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("SHA256Reader: %v", err)
	}
	if got != want {
		t.Fatalf("SHA256Reader(abc) = %s, want %s", got, want)
	}
}

func TestHashUserKeyStable(t *testing.T) {
	a := HashUserKey("user-1")
	b := HashUserKey("user-1")
	if a != b {
		t.Fatalf("expected stable hash, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashUserKey("user-2") {
		t.Fatalf("different users must not collide")
	}
}
