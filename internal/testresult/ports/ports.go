//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

package ports

import (
	"context"

	"github.com/d4rken/cwa-app-android/internal/testresult/models"
)

// ResultFetcher asks the verification server for the result of a test.
type ResultFetcher interface {
	FetchTestResult(ctx context.Context, registrationToken string) (models.TestResult, error)
}

// Notifier shows and cancels local notifications.
type Notifier interface {
	ShowTestResultAvailable(ctx context.Context, result models.TestResult) error
	Cancel(ctx context.Context, notificationID int) error
}

// Scheduler controls the periodic polling job. Both calls return without
// waiting for a running invocation, so they are safe to call from inside one.
type Scheduler interface {
	SchedulePeriodic()
	StopPeriodic()
}
