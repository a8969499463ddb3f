package documents

import (
	"context"
	"database/sql"
	"errors"
)

const documentColumns = `id, user_id, original_filename, mime_type, size_bytes, storage_path, file_hash, processing_status, uploaded_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document. Documents always start in pending.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    original_filename,
    mime_type,
    size_bytes,
    storage_path,
    file_hash,
    processing_status,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	status := doc.ProcessingStatus
	if status == "" {
		status = StatusPending
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.OriginalFilename,
		nullString(doc.MimeType),
		doc.SizeBytes,
		nullString(doc.StoragePath),
		nullString(doc.FileHash),
		string(status),
		doc.UploadedAt,
	)
	return err
}

// Get fetches a document by ID without owner scoping. Reserved for the
// processing worker; HTTP reads go through GetByID.
func (r *PGRepo) Get(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, documentID))
}

// GetByID fetches a document by ID for a user. A document owned by a
// different user is indistinguishable from a missing one.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
}

// ListByUser lists documents newest upload first. The id tie-break keeps
// pagination deterministic under same-timestamp inserts.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY uploaded_at DESC, id DESC
LIMIT $2 OFFSET $3`
	return r.queryDocuments(ctx, query, userID, limit, offset)
}

// FindByHash returns a document with the given content hash for a user.
// This is the advisory dedup probe run before an upload proceeds.
func (r *PGRepo) FindByHash(ctx context.Context, userID, hash string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND file_hash = $2 AND deleted_at IS NULL
ORDER BY uploaded_at ASC, id ASC
LIMIT 1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, userID, hash))
}

// ListByStatus lists documents oldest upload first, for workers claiming
// pending work FIFO. There is no claim lock; concurrent workers will
// observe overlapping result sets.
func (r *PGRepo) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Document, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE processing_status = $1 AND deleted_at IS NULL
ORDER BY uploaded_at ASC, id ASC
LIMIT $2 OFFSET $3`
	return r.queryDocuments(ctx, query, string(status), limit, offset)
}

// UpdateStatus performs the transition and returns the updated row. It
// does not validate the forward-only rule; that is the caller's
// responsibility.
func (r *PGRepo) UpdateStatus(ctx context.Context, documentID string, status Status) (Document, error) {
	const query = `
UPDATE documents
SET processing_status = $1
WHERE id = $2 AND deleted_at IS NULL
RETURNING ` + documentColumns
	return scanDocument(r.DB.QueryRowContext(ctx, query, string(status), documentID))
}

// Delete soft-deletes a document for a user.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	const query = `
UPDATE documents
SET deleted_at = now()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) queryDocuments(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var mimeType sql.NullString
	var storagePath sql.NullString
	var fileHash sql.NullString
	var status string
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.OriginalFilename,
		&mimeType,
		&doc.SizeBytes,
		&storagePath,
		&fileHash,
		&status,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	doc.MimeType = mimeType.String
	doc.StoragePath = storagePath.String
	doc.FileHash = fileHash.String
	doc.ProcessingStatus = Status(status)
	return doc, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Repo = (*PGRepo)(nil)
