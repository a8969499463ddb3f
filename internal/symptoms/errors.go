package symptoms

import "errors"

var (
	ErrNotFound     = errors.New("symptom not found")
	ErrInvalidInput = errors.New("invalid symptom input")
)
