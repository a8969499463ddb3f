package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	conditions, err := marshalConditions(user.Conditions)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO users (id, email, name, date_of_birth, height_cm, weight_kg, conditions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  date_of_birth = EXCLUDED.date_of_birth,
  height_cm = EXCLUDED.height_cm,
  weight_kg = EXCLUDED.weight_kg,
  conditions = EXCLUDED.conditions,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.Email),
		nullableString(user.Name),
		user.DateOfBirth,
		user.HeightCm,
		user.WeightKg,
		conditions,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, name, date_of_birth, height_cm, weight_kg, conditions, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var email sql.NullString
	var name sql.NullString
	var dob sql.NullTime
	var heightCm sql.NullFloat64
	var weightKg sql.NullFloat64
	var conditions []byte
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&email,
		&name,
		&dob,
		&heightCm,
		&weightKg,
		&conditions,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if email.Valid {
		user.Email = email.String
	}
	if name.Valid {
		user.Name = name.String
	}
	if dob.Valid {
		d := dob.Time
		user.DateOfBirth = &d
	}
	if heightCm.Valid {
		h := heightCm.Float64
		user.HeightCm = &h
	}
	if weightKg.Valid {
		w := weightKg.Float64
		user.WeightKg = &w
	}
	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &user.Conditions); err != nil {
			return User{}, fmt.Errorf("decode conditions: %w", err)
		}
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func marshalConditions(conditions []string) (any, error) {
	if conditions == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(conditions)
	if err != nil {
		return nil, fmt.Errorf("encode conditions: %w", err)
	}
	return encoded, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
