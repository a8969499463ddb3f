package extractions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an extraction result. The unique index on document_id
// rejects a second result for the same document.
func (r *PGRepo) Create(ctx context.Context, data ExtractedData) error {
	const query = `
INSERT INTO extracted_data (id, document_id, user_id, document_type, fields, extracted_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	docType := data.DocumentType
	if docType == "" {
		docType = TypeOther
	}
	fields, err := marshalJSONB(data.Fields)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		data.ID,
		data.DocumentID,
		data.UserID,
		string(docType),
		fields,
		data.ExtractedAt,
	)
	return err
}

// GetByDocument returns the extraction result for a document, scoped to
// its owner.
func (r *PGRepo) GetByDocument(ctx context.Context, userID, documentID string) (ExtractedData, error) {
	const query = `
SELECT id, document_id, user_id, document_type, fields, extracted_at
FROM extracted_data
WHERE user_id = $1 AND document_id = $2
LIMIT 1`

	var data ExtractedData
	var docType string
	var fields sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID, documentID).Scan(
		&data.ID,
		&data.DocumentID,
		&data.UserID,
		&docType,
		&fields,
		&data.ExtractedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExtractedData{}, ErrNotFound
		}
		return ExtractedData{}, err
	}
	data.DocumentType = DocumentType(docType)
	if fields.Valid && fields.String != "" {
		if err := json.Unmarshal([]byte(fields.String), &data.Fields); err != nil {
			return ExtractedData{}, err
		}
	}
	return data, nil
}

func marshalJSONB(fields map[string]any) (any, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

var _ Repo = (*PGRepo)(nil)
