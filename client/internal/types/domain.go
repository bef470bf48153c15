package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Profile is the account owner's public profile.
type Profile struct {
	UserID   string `json:"userId"`
	Name     string `json:"name,omitempty"`
	Birthday string `json:"birthday,omitempty"` // YYYY-MM-DD
	Gender   string `json:"gender,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Device is a paired tracker.
type Device struct {
	ID              string `json:"id"`
	DeviceType      string `json:"deviceType"`
	SerialNumber    string `json:"serialNumber"`
	FirmwareVersion string `json:"firmwareVersion"`
	BatteryLevel    int    `json:"batteryLevel"`
}

// Goal is the activity target for one day.
type Goal struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Points       float64 `json:"points"`
	TargetPoints float64 `json:"targetPoints"`
}

// SummaryDay holds one day of a detailed activity summary.
type SummaryDay struct {
	Date             string  `json:"date"`
	Points           float64 `json:"points"`
	Steps            int     `json:"steps"`
	Calories         float64 `json:"calories"`
	ActivityCalories float64 `json:"activityCalories"`
	Distance         float64 `json:"distance"`
}

// Summary is the activity summary over a date range. The aggregate fields
// are set by default; Days is set instead when the request asked for
// detail=true.
type Summary struct {
	Points           float64      `json:"points,omitempty"`
	Steps            int          `json:"steps,omitempty"`
	Calories         float64      `json:"calories,omitempty"`
	ActivityCalories float64      `json:"activityCalories,omitempty"`
	Distance         float64      `json:"distance,omitempty"`
	Days             []SummaryDay `json:"summary,omitempty"`
}

// Session is a tagged activity (cycling, swimming, ...).
type Session struct {
	ID           string    `json:"id"`
	ActivityType string    `json:"activityType"`
	StartTime    time.Time `json:"startTime"`
	Duration     int       `json:"duration"` // seconds
	Points       float64   `json:"points"`
	Steps        int       `json:"steps"`
	Calories     float64   `json:"calories"`
	Distance     float64   `json:"distance"`
}

// SleepDetail marks a change of sleep state at Datetime.
// Value is 1 (awake), 2 (sleep) or 3 (deep sleep).
type SleepDetail struct {
	Datetime time.Time `json:"datetime"`
	Value    int       `json:"value"`
}

// Sleep is one sleep period.
type Sleep struct {
	ID           string        `json:"id"`
	AutoDetected bool          `json:"autoDetected"`
	StartTime    time.Time     `json:"startTime"`
	Duration     int           `json:"duration"` // seconds
	SleepDetails []SleepDetail `json:"sleepDetails"`
}
