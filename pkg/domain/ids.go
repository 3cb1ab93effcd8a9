package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
)

// PersonID is the grouping key that ties a person's certificates together.
// Two certificates belong to the same person exactly when their keys are equal.
//
// Invariant: non-empty after trimming. Construct via ParsePersonID at trust
// boundaries.
type PersonID string

// ParsePersonID validates a grouping key from external input.
func ParsePersonID(s string) (PersonID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "person id cannot be empty")
	}
	return PersonID(s), nil
}

func (p PersonID) String() string {
	return string(p)
}

// CertificateID identifies one held certificate (its unique certificate identifier).
type CertificateID string

func (c CertificateID) String() string {
	return string(c)
}

// CheckInID is the globally unique identifier of a check-in record.
type CheckInID uuid.UUID

// NewCheckInID returns a fresh random identifier.
func NewCheckInID() CheckInID {
	return CheckInID(uuid.New())
}

// ParseCheckInID parses a UUID string; the nil UUID is rejected.
func ParseCheckInID(s string) (CheckInID, error) {
	if s == "" {
		return CheckInID{}, dErrors.New(dErrors.CodeInvalidInput, "check-in id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return CheckInID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid check-in id")
	}
	if u == uuid.Nil {
		return CheckInID{}, dErrors.New(dErrors.CodeInvalidInput, "check-in id cannot be nil")
	}
	return CheckInID(u), nil
}

func (c CheckInID) String() string {
	return uuid.UUID(c).String()
}

func (c CheckInID) IsNil() bool {
	return uuid.UUID(c) == uuid.Nil
}

func (c CheckInID) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CheckInID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*c = CheckInID(u)
	return nil
}
