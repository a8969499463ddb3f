package extractions

import "errors"

var (
	ErrNotFound = errors.New("not found")
)
