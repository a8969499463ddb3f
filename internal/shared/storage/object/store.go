package object

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Save generates a fresh storage path per call; identical content uploaded
// twice yields two distinct paths.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storagePath string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

var (
	// ErrUnavailable is returned by stores constructed without credentials
	// or a bucket. Callers treat it as a routine, checked condition.
	ErrUnavailable = errors.New("object storage unavailable")
	// ErrNotFound is returned when the referenced object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidLocator is returned for malformed storage references.
	ErrInvalidLocator = errors.New("invalid locator format")
)

// Locator is a normalized reference to a blob: a bucket plus an object
// path. Bucket is empty for bucket-relative references.
type Locator struct {
	Bucket string
	Path   string
}

// URI renders the locator as a gs:// URI when the bucket is known,
// otherwise the bare object path.
func (l Locator) URI() string {
	if l.Bucket == "" {
		return l.Path
	}
	return "gs://" + l.Bucket + "/" + l.Path
}

// ResolveLocator normalizes a storage reference. It accepts a
// fully-qualified gs:// URI or a bucket-relative object path. A URI with
// the wrong scheme, or a reference missing a required path segment,
// fails with ErrInvalidLocator.
func ResolveLocator(raw string) (Locator, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Locator{}, ErrInvalidLocator
	}

	if scheme, rest, ok := strings.Cut(raw, "://"); ok {
		if scheme != "gs" {
			return Locator{}, ErrInvalidLocator
		}
		bucket, path, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || path == "" {
			return Locator{}, ErrInvalidLocator
		}
		return Locator{Bucket: bucket, Path: path}, nil
	}

	// Bucket-relative references are always <namespace>/<object>, so a
	// bare token is not a valid locator.
	path := strings.TrimPrefix(raw, "/")
	if !strings.Contains(path, "/") {
		return Locator{}, ErrInvalidLocator
	}
	return Locator{Path: path}, nil
}
