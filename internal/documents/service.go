package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"medhub-backend/internal/queue"
	"medhub-backend/internal/shared/storage/object"
	"medhub-backend/internal/shared/telemetry"
	"medhub-backend/internal/shared/util"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	// Queue is optional. When set, uploads enqueue a processing
	// message; when nil, the worker finds pending documents by
	// polling.
	Queue queue.Client
}

// UploadResult is the outcome of an upload attempt. Duplicate is set
// when the dedup probe matched an existing document and no bytes were
// written.
type UploadResult struct {
	Document  Document
	Duplicate bool
}

// Upload hashes the content, probes for a duplicate, persists the bytes
// and records the document in pending. The dedup check and the create
// are not transactional; two near-simultaneous uploads of the same
// content can both pass the probe and produce two rows. That race is
// accepted and documented rather than masked.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (UploadResult, error) {
	if userID == "" || fileName == "" {
		return UploadResult{}, ErrInvalidInput
	}

	// Hash while buffering so the content is only read once. The
	// bytes have to be held anyway: the dedup probe must finish
	// before anything is written to storage.
	var buf bytes.Buffer
	hash, err := util.SHA256Reader(io.TeeReader(r, &buf))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if buf.Len() == 0 {
		return UploadResult{}, ErrInvalidInput
	}

	existing, err := s.Repo.FindByHash(ctx, userID, hash)
	if err == nil {
		return UploadResult{Document: existing, Duplicate: true}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return UploadResult{}, err
	}

	storagePath, size, mimeType, err := s.Store.Save(ctx, userID, fileName, &buf)
	if err != nil {
		return UploadResult{}, err
	}

	doc := Document{
		ID:               uuid.NewString(),
		UserID:           userID,
		OriginalFilename: fileName,
		MimeType:         mimeType,
		SizeBytes:        size,
		StoragePath:      storagePath,
		FileHash:         hash,
		ProcessingStatus: StatusPending,
		UploadedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return UploadResult{}, err
	}

	// Enqueue is best effort. A lost message is picked up by the
	// polling fallback, so the upload still succeeds.
	if s.Queue != nil {
		msg := queue.Message{
			DocumentID: doc.ID,
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			telemetry.Warn("documents.enqueue_failed", map[string]any{
				"document_id": doc.ID,
				"error":       err.Error(),
			})
		}
	}
	return UploadResult{Document: doc}, nil
}

// Get returns a document for its owner.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns a page of a user's documents, newest upload first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// UpdateStatus validates and performs a lifecycle transition. Forward
// edges always pass; failed→processing passes because it is an explicit
// retry request from the caller. Everything else is ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, documentID string, to Status) (Document, error) {
	if documentID == "" || !to.Valid() {
		return Document{}, ErrInvalidInput
	}
	doc, err := s.Repo.Get(ctx, documentID)
	if err != nil {
		return Document{}, err
	}
	if !CanTransition(doc.ProcessingStatus, to) && !IsRetry(doc.ProcessingStatus, to) {
		return Document{}, fmt.Errorf("%w: %s→%s", ErrInvalidTransition, doc.ProcessingStatus, to)
	}
	return s.Repo.UpdateStatus(ctx, documentID, to)
}

// Delete removes the stored bytes and then the record, in that order, so
// a record never outlives an intact row pointing at missing bytes.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if doc.StoragePath != "" {
		if err := s.Store.Delete(ctx, doc.StoragePath); err != nil && !errors.Is(err, object.ErrNotFound) {
			return err
		}
	}
	return s.Repo.Delete(ctx, userID, documentID)
}
