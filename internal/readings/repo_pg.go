package readings

import (
	"context"
	"database/sql"
	"errors"
)

const readingColumns = `id, user_id, type, value, unit, systolic, diastolic, note, recorded_at`

// PGRepo implements Repo on PostgreSQL.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, reading Reading) error {
	const query = `
INSERT INTO readings (id, user_id, type, value, unit, systolic, diastolic, note, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		reading.ID,
		reading.UserID,
		reading.Type,
		reading.Value,
		nullString(reading.Unit),
		reading.Systolic,
		reading.Diastolic,
		nullString(reading.Note),
		reading.RecordedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, readingID string) (Reading, error) {
	const query = `
SELECT ` + readingColumns + `
FROM readings
WHERE id = $1 AND user_id = $2`
	reading, err := scanReading(r.DB.QueryRowContext(ctx, query, readingID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reading{}, ErrNotFound
		}
		return Reading{}, err
	}
	return reading, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reading, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + readingColumns + `
FROM readings
WHERE user_id = $1
ORDER BY recorded_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, reading)
	}
	return result, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, readingID string) error {
	const query = `DELETE FROM readings WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, readingID, userID)
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

func scanReading(row rowScanner) (Reading, error) {
	var reading Reading
	var value sql.NullFloat64
	var unit sql.NullString
	var systolic sql.NullInt64
	var diastolic sql.NullInt64
	var note sql.NullString
	err := row.Scan(
		&reading.ID,
		&reading.UserID,
		&reading.Type,
		&value,
		&unit,
		&systolic,
		&diastolic,
		&note,
		&reading.RecordedAt,
	)
	if err != nil {
		return Reading{}, err
	}
	if value.Valid {
		v := value.Float64
		reading.Value = &v
	}
	if unit.Valid {
		reading.Unit = unit.String
	}
	if systolic.Valid {
		s := int(systolic.Int64)
		reading.Systolic = &s
	}
	if diastolic.Valid {
		d := int(diastolic.Int64)
		reading.Diastolic = &d
	}
	if note.Valid {
		reading.Note = note.String
	}
	return reading, nil
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
