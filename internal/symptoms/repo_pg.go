package symptoms

import (
	"context"
	"database/sql"
	"errors"
)

const symptomColumns = `id, user_id, name, severity, note, onset_at`

// PGRepo implements Repo on PostgreSQL.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, symptom Symptom) error {
	const query = `
INSERT INTO symptoms (id, user_id, name, severity, note, onset_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		symptom.ID,
		symptom.UserID,
		symptom.Name,
		symptom.Severity,
		nullString(symptom.Note),
		symptom.OnsetAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, symptomID string) (Symptom, error) {
	const query = `
SELECT ` + symptomColumns + `
FROM symptoms
WHERE id = $1 AND user_id = $2`
	symptom, err := scanSymptom(r.DB.QueryRowContext(ctx, query, symptomID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Symptom{}, ErrNotFound
		}
		return Symptom{}, err
	}
	return symptom, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Symptom, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + symptomColumns + `
FROM symptoms
WHERE user_id = $1
ORDER BY onset_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Symptom
	for rows.Next() {
		symptom, err := scanSymptom(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, symptom)
	}
	return result, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, symptomID string) error {
	const query = `DELETE FROM symptoms WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, symptomID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSymptom(row rowScanner) (Symptom, error) {
	var symptom Symptom
	var note sql.NullString
	err := row.Scan(
		&symptom.ID,
		&symptom.UserID,
		&symptom.Name,
		&symptom.Severity,
		&note,
		&symptom.OnsetAt,
	)
	if err != nil {
		return Symptom{}, err
	}
	if note.Valid {
		symptom.Note = note.String
	}
	return symptom, nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Repo = (*PGRepo)(nil)
