package documents

import "time"

// Status is a document's processing lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further automatic transition occurs from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether from→to is a forward edge of the
// lifecycle: pending→processing, processing→completed, processing→failed.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusCompleted || to == StatusFailed
	}
	return false
}

// IsRetry reports whether from→to re-enters processing from the failed
// terminal state. The entity does not forbid it, but it must be an
// explicit caller action, never an automatic one.
func IsRetry(from, to Status) bool {
	return from == StatusFailed && to == StatusProcessing
}

// Document represents an uploaded medical document owned by a user.
type Document struct {
	ID               string
	UserID           string
	OriginalFilename string
	MimeType         string
	SizeBytes        int64
	StoragePath      string
	FileHash         string // empty when hashing was skipped
	ProcessingStatus Status
	UploadedAt       time.Time
}
