// Package scheduler runs the test result poll as an in-process periodic job:
// once per interval, with exponential backoff between retries of a run.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/d4rken/cwa-app-android/internal/testresult/models"
)

// RunFunc is one job invocation. attempt counts the retries already made.
type RunFunc func(ctx context.Context, attempt int) (models.Outcome, error)

type Periodic struct {
	run            RunFunc
	interval       time.Duration
	initialDelay   time.Duration
	backoffInitial time.Duration
	backoffMax     time.Duration
	logger         *slog.Logger

	root       context.Context
	rootCancel context.CancelFunc

	mu     sync.Mutex
	cancel context.CancelFunc

	// runMu keeps invocations from overlapping across re-arms.
	runMu sync.Mutex
}

type Option func(*Periodic)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Periodic) {
		p.logger = logger
	}
}

// WithInterval sets the time between invocations.
func WithInterval(d time.Duration) Option {
	return func(p *Periodic) {
		p.interval = d
	}
}

// WithInitialDelay sets the time from (re)arming to the first invocation.
func WithInitialDelay(d time.Duration) Option {
	return func(p *Periodic) {
		p.initialDelay = d
	}
}

// WithBackoff bounds the exponential wait between retries.
func WithBackoff(initial, max time.Duration) Option {
	return func(p *Periodic) {
		p.backoffInitial = initial
		p.backoffMax = max
	}
}

func New(run RunFunc, opts ...Option) *Periodic {
	p := &Periodic{
		run:            run,
		interval:       2 * time.Hour,
		initialDelay:   10 * time.Second,
		backoffInitial: 30 * time.Second,
		backoffMax:     10 * time.Minute,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.root, p.rootCancel = context.WithCancel(context.Background())
	return p
}

// SchedulePeriodic (re)arms the job. A pending schedule is replaced; an
// invocation already running finishes first.
func (p *Periodic) SchedulePeriodic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.root.Err() != nil {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(p.root)
	p.cancel = cancel
	go p.loop(ctx)
	p.logger.Debug("test result polling scheduled", "interval", p.interval)
}

// StopPeriodic cancels the schedule without waiting. Stopping twice is fine.
func (p *Periodic) StopPeriodic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		p.logger.Debug("test result polling stopped")
	}
}

// Scheduled reports whether the job is armed.
func (p *Periodic) Scheduled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Close stops the job for good.
func (p *Periodic) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rootCancel()
	p.cancel = nil
}

func (p *Periodic) loop(ctx context.Context) {
	timer := time.NewTimer(p.initialDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		p.invoke(ctx)
		timer.Reset(p.interval)
	}
}

// invoke runs the job and retries it with backoff for as long as it asks to.
func (p *Periodic) invoke(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.backoffInitial
	b.MaxInterval = p.backoffMax
	b.MaxElapsedTime = 0
	b.Reset()

	for attempt := 0; ; attempt++ {
		outcome, ran, err := p.runExclusive(ctx, attempt)
		if !ran || outcome != models.OutcomeRetry {
			if err != nil {
				p.logger.WarnContext(ctx, "test result poll failed", "attempt", attempt, "outcome", outcome, "error", err)
			}
			return
		}
		wait := b.NextBackOff()
		p.logger.DebugContext(ctx, "retrying test result poll", "attempt", attempt+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// runExclusive reports ran=false when the schedule was cancelled while it
// waited for a previous invocation.
func (p *Periodic) runExclusive(ctx context.Context, attempt int) (outcome models.Outcome, ran bool, err error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if ctx.Err() != nil {
		return 0, false, nil
	}
	outcome, err = p.run(ctx, attempt)
	return outcome, true, err
}
