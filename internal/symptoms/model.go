package symptoms

import "time"

// Symptom is a logged symptom episode. Severity runs 1 (mild) to 10
// (severe).
type Symptom struct {
	ID       string    `json:"id"`
	UserID   string    `json:"-"`
	Name     string    `json:"name"`
	Severity int       `json:"severity"`
	Note     string    `json:"note,omitempty"`
	OnsetAt  time.Time `json:"onsetAt"`
}
