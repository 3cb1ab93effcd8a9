package models

import (
	"time"

	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// TraceLocation is a venue whose QR code was already verified.
type TraceLocation struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// CheckIn is the stay [CheckInStart, CheckInEnd) at a trace location.
// Once Completed it never becomes active again.
type CheckIn struct {
	ID           domain.CheckInID `json:"id"`
	Location     TraceLocation    `json:"location"`
	CheckInStart time.Time        `json:"check_in_start"`
	CheckInEnd   time.Time        `json:"check_in_end"`
	Completed    bool             `json:"completed"`
}

// State is the lifecycle position of a check-in at a point in time.
type State int

const (
	StateActive State = iota
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// StateAt treats a check-in whose end has passed as completed even before the
// expiry sweep has persisted it.
func (c CheckIn) StateAt(now time.Time) State {
	if c.Completed || !now.Before(c.CheckInEnd) {
		return StateCompleted
	}
	return StateActive
}

// Request creates a check-in.
type Request struct {
	Location TraceLocation
	Start    time.Time
	End      time.Time
}
