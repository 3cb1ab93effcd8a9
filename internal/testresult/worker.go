// Package testresult polls the verification server for a pending test result
// until it arrives, the user saw it, or the polling window runs out.
package testresult

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/d4rken/cwa-app-android/internal/notification"
	"github.com/d4rken/cwa-app-android/internal/testresult/metrics"
	"github.com/d4rken/cwa-app-android/internal/testresult/models"
	"github.com/d4rken/cwa-app-android/internal/testresult/ports"
)

var (
	// ErrNoRegistrationToken means no test is registered. Retrying cannot help.
	ErrNoRegistrationToken = errors.New("no registration token set")
	// ErrTransient wraps network and storage failures that a retry may fix.
	ErrTransient = errors.New("transient polling failure")
)

const (
	DefaultRetryThreshold = 2
	DefaultMaxPollingDays = 21
)

type Worker struct {
	settings  *PollingSettings
	fetcher   ports.ResultFetcher
	notifier  ports.Notifier
	scheduler ports.Scheduler

	clock          func() time.Time
	retryThreshold int
	maxPollingDays int
	logger         *slog.Logger
	metrics        *metrics.Metrics

	// mu makes RunOnce single-flight: the notificationSent check and its
	// write happen under the same hold.
	mu sync.Mutex
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithClock(clock func() time.Time) Option {
	return func(w *Worker) {
		w.clock = clock
	}
}

// WithRetryThreshold sets how many retries a run may take before it gives up
// and re-arms the periodic schedule.
func WithRetryThreshold(n int) Option {
	return func(w *Worker) {
		w.retryThreshold = n
	}
}

func WithMaxPollingDays(days int) Option {
	return func(w *Worker) {
		w.maxPollingDays = days
	}
}

func New(settings *PollingSettings, fetcher ports.ResultFetcher, notifier ports.Notifier, scheduler ports.Scheduler, opts ...Option) (*Worker, error) {
	if settings == nil {
		return nil, fmt.Errorf("polling settings are required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("result fetcher is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	w := &Worker{
		settings:       settings,
		fetcher:        fetcher,
		notifier:       notifier,
		scheduler:      scheduler,
		clock:          time.Now,
		retryThreshold: DefaultRetryThreshold,
		maxPollingDays: DefaultMaxPollingDays,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// RunOnce is one invocation of the periodic job. runAttemptCount is the number
// of retries already made for this invocation.
func (w *Worker) RunOnce(ctx context.Context, runAttemptCount int) (models.Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	outcome, err := w.run(ctx, runAttemptCount)
	w.metrics.IncrementRun(outcome.String())
	w.logger.DebugContext(ctx, "test result poll finished", "attempt", runAttemptCount, "outcome", outcome, "error", err)
	return outcome, err
}

func (w *Worker) run(ctx context.Context, attempt int) (models.Outcome, error) {
	if attempt > w.retryThreshold {
		w.logger.InfoContext(ctx, "test result poll gave up, rescheduling", "attempt", attempt)
		w.scheduler.SchedulePeriodic()
		return models.OutcomeFailure, nil
	}

	reason, err := w.abortReason(ctx)
	if err != nil {
		return models.OutcomeRetry, fmt.Errorf("%w: %w", ErrTransient, err)
	}
	if reason != "" {
		w.logger.InfoContext(ctx, "stopping test result polling", "reason", reason)
		w.metrics.IncrementStop(reason)
		if err := w.stop(ctx); err != nil {
			return models.OutcomeRetry, fmt.Errorf("%w: %w", ErrTransient, err)
		}
		return models.OutcomeSuccess, nil
	}

	token, err := w.settings.RegistrationToken(ctx)
	if err != nil {
		return models.OutcomeRetry, fmt.Errorf("%w: %w", ErrTransient, err)
	}
	if token == "" {
		return models.OutcomeFailure, ErrNoRegistrationToken
	}

	result, err := w.fetcher.FetchTestResult(ctx, token)
	if err != nil {
		return models.OutcomeRetry, fmt.Errorf("%w: fetch test result: %w", ErrTransient, err)
	}
	current, err := w.settings.RegistrationToken(ctx)
	if err != nil {
		return models.OutcomeRetry, fmt.Errorf("%w: %w", ErrTransient, err)
	}
	if current != token {
		return models.OutcomeRetry, fmt.Errorf("%w: registration token changed during fetch", ErrTransient)
	}
	w.logger.DebugContext(ctx, "test result retrieved", "result", result)

	if !result.IsTerminal() {
		return models.OutcomeSuccess, nil
	}

	if err := w.notifier.ShowTestResultAvailable(ctx, result); err != nil {
		return models.OutcomeRetry, fmt.Errorf("%w: show notification: %w", ErrTransient, err)
	}
	if err := w.settings.SetNotificationSent(ctx, true); err != nil {
		return models.OutcomeRetry, fmt.Errorf("%w: persist notification flag: %w", ErrTransient, err)
	}
	w.metrics.IncrementNotificationSent()
	if err := w.notifier.Cancel(ctx, notification.RiskLevelScoreNotificationID); err != nil {
		w.logger.WarnContext(ctx, "failed to cancel risk level notification", "error", err)
	}
	w.metrics.IncrementStop("result_available")
	if err := w.stop(ctx); err != nil {
		w.logger.WarnContext(ctx, "failed to reset polling timestamp", "error", err)
	}
	return models.OutcomeSuccess, nil
}

// abortReason returns why polling should stop, or "" to keep polling.
func (w *Worker) abortReason(ctx context.Context) (string, error) {
	sent, err := w.settings.NotificationSent(ctx)
	if err != nil {
		return "", err
	}
	if sent {
		return "notification_sent", nil
	}
	viewed, err := w.settings.ResultViewed(ctx)
	if err != nil {
		return "", err
	}
	if viewed {
		return "result_viewed", nil
	}
	initial, err := w.settings.InitialTimestamp(ctx)
	if err != nil {
		return "", err
	}
	days := int(w.clock().Sub(time.UnixMilli(initial)) / (24 * time.Hour))
	if days >= w.maxPollingDays {
		return "max_days", nil
	}
	return "", nil
}

// stop ends the polling session. The timestamp is only written when set.
func (w *Worker) stop(ctx context.Context) error {
	initial, err := w.settings.InitialTimestamp(ctx)
	if err != nil {
		return err
	}
	if initial != 0 {
		if err := w.settings.SetInitialTimestamp(ctx, 0); err != nil {
			return err
		}
	}
	w.scheduler.StopPeriodic()
	return nil
}

// StartPolling opens a new polling session for a freshly registered test.
func (w *Worker) StartPolling(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	token, err := w.settings.RegistrationToken(ctx)
	if err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	if token == "" {
		return ErrNoRegistrationToken
	}
	if err := w.settings.SetInitialTimestamp(ctx, w.clock().UnixMilli()); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	if err := w.settings.SetNotificationSent(ctx, false); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	if err := w.settings.SetResultViewed(ctx, false); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	w.scheduler.SchedulePeriodic()
	w.logger.InfoContext(ctx, "test result polling started")
	return nil
}

// State returns the durable polling flags.
func (w *Worker) State(ctx context.Context) (models.PollingState, error) {
	return w.settings.State(ctx)
}
