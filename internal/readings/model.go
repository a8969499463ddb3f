package readings

import "time"

// Reading is a single health measurement recorded by a user. Scalar
// readings carry Value/Unit; blood pressure carries Systolic/Diastolic.
type Reading struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Type       string    `json:"type"`
	Value      *float64  `json:"value,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	Systolic   *int      `json:"systolic,omitempty"`
	Diastolic  *int      `json:"diastolic,omitempty"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Well-known reading types. Type is free-form; these are the ones the
// clients chart.
const (
	TypeBloodPressure = "blood_pressure"
	TypeGlucose       = "glucose"
	TypeWeight        = "weight"
	TypeHeartRate     = "heart_rate"
	TypeTemperature   = "temperature"
)
