package models

import (
	"fmt"
	"time"
)

// TestResult is the verification server's verdict for a registered test.
type TestResult int

const (
	TestResultPending TestResult = iota
	TestResultNegative
	TestResultPositive
	TestResultInvalid
)

// ParseTestResult maps the wire code. Unknown codes are an error.
func ParseTestResult(code int) (TestResult, error) {
	r := TestResult(code)
	switch r {
	case TestResultPending, TestResultNegative, TestResultPositive, TestResultInvalid:
		return r, nil
	default:
		return 0, fmt.Errorf("unknown test result code %d", code)
	}
}

// IsTerminal reports whether polling can stop.
func (r TestResult) IsTerminal() bool {
	switch r {
	case TestResultNegative, TestResultPositive, TestResultInvalid:
		return true
	default:
		return false
	}
}

func (r TestResult) String() string {
	switch r {
	case TestResultPending:
		return "pending"
	case TestResultNegative:
		return "negative"
	case TestResultPositive:
		return "positive"
	case TestResultInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("TestResult(%d)", int(r))
	}
}

// Outcome tells the scheduler what to do after one run.
type Outcome int

const (
	// OutcomeSuccess keeps the periodic schedule as is.
	OutcomeSuccess Outcome = iota
	// OutcomeRetry asks for another attempt after backoff.
	OutcomeRetry
	// OutcomeFailure ends this run without retrying.
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetry:
		return "retry"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PollingState is the durable polling bookkeeping.
type PollingState struct {
	InitialPollingTimestamp time.Time `json:"initial_polling_timestamp,omitzero"`
	NotificationSent        bool      `json:"notification_sent"`
	ResultViewed            bool      `json:"result_viewed"`
	HasRegistrationToken    bool      `json:"has_registration_token"`
}
