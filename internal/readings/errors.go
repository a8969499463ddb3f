package readings

import "errors"

var (
	ErrNotFound     = errors.New("reading not found")
	ErrInvalidInput = errors.New("invalid reading input")
)
