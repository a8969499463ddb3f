package gcs

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"medhub-backend/internal/shared/storage/object"
	"medhub-backend/internal/shared/util"
)

// Store implements ObjectStore using Google Cloud Storage.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// New creates a GCS-backed object store.
func New(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
	}, nil
}

// NewDisabled creates a store with no backing client. Every operation
// fails fast with object.ErrUnavailable instead of panicking on a nil
// client, so callers can treat missing credentials as a checked state.
func NewDisabled() *Store {
	return &Store{}
}

// Save uploads the reader contents under the user's namespace with a
// fresh random object name. The returned storage path is the full
// gs:// URI so records stay readable if the configured bucket or
// prefix later changes.
func (s *Store) Save(ctx context.Context, userId string, fileName string, r io.Reader) (string, int64, string, error) {
	if s.client == nil {
		return "", 0, "", object.ErrUnavailable
	}

	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, "", fmt.Errorf("sanitize file name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", 0, "", err
	}

	finalName := fmt.Sprintf("%s_%s", randomID(), sanitizedName)
	storagePath := path.Join(util.HashUserKey(userId), finalName)
	objectKey := applyPrefix(s.prefix, storagePath)

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return "", 0, "", fmt.Errorf("read sniff: %w", readErr)
	}
	mimeType := http.DetectContentType(sniff[:n])

	body := io.MultiReader(bytes.NewReader(sniff[:n]), r)
	counter := &countingReader{r: body}

	w := s.client.Bucket(s.bucket).Object(objectKey).NewWriter(ctx)
	w.ContentType = mimeType
	if _, err := io.Copy(w, counter); err != nil {
		_ = w.Close()
		return "", 0, "", fmt.Errorf("gcs write bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	if err := w.Close(); err != nil {
		return "", 0, "", fmt.Errorf("gcs close bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	locator := object.Locator{Bucket: s.bucket, Path: objectKey}
	return locator.URI(), counter.n, mimeType, nil
}

// Open downloads a stored object for reading. It accepts a gs:// URI or
// a bucket-relative path.
func (s *Store) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, object.ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bucket, key, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}

	rc, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("gcs read bucket=%s key=%s: %w", bucket, key, err)
	}
	return rc, nil
}

// Delete removes a stored object. It accepts a gs:// URI or a
// bucket-relative path.
func (s *Store) Delete(ctx context.Context, storagePath string) error {
	if s.client == nil {
		return object.ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	bucket, key, err := s.resolve(storagePath)
	if err != nil {
		return err
	}

	if err := s.client.Bucket(bucket).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return object.ErrNotFound
		}
		return fmt.Errorf("gcs delete bucket=%s key=%s: %w", bucket, key, err)
	}
	return nil
}

// resolve maps a reference to a concrete (bucket, objectKey) pair.
// Bucket-relative references get the configured bucket and prefix;
// fully-qualified URIs are used as-is.
func (s *Store) resolve(raw string) (string, string, error) {
	loc, err := object.ResolveLocator(raw)
	if err != nil {
		return "", "", err
	}
	if loc.Bucket != "" {
		return loc.Bucket, loc.Path, nil
	}
	return s.bucket, applyPrefix(s.prefix, loc.Path), nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanKey := strings.TrimLeft(key, "/")
	if prefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return prefix
	}
	return prefix + "/" + cleanKey
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

var _ object.ObjectStore = (*Store)(nil)
