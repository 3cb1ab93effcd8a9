// Package checkin manages the check-in collection: the periodically
// recomputed view, checkout, deletion and automatic expiry.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/d4rken/cwa-app-android/internal/checkin/metrics"
	"github.com/d4rken/cwa-app-android/internal/checkin/models"
	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/pkg/domain"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

// ErrCheckout wraps every checkout failure.
var ErrCheckout = errors.New("checkout failed")

const errorBuffer = 16

// Repository is the persisted collection.
type Repository interface {
	Snapshot(ctx context.Context) ([]models.CheckIn, error)
	Subscribe(ctx context.Context) <-chan []models.CheckIn
	Modify(ctx context.Context, fn func([]models.CheckIn) ([]models.CheckIn, error)) ([]models.CheckIn, error)
}

type Manager struct {
	repo    Repository
	clock   func() time.Time
	tick    time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	errs    chan error
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithTick sets how often the view is recomputed and overdue check-ins expire.
func WithTick(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.tick = d
		}
	}
}

func New(repo Repository, opts ...Option) (*Manager, error) {
	if repo == nil {
		return nil, fmt.Errorf("check-in repository is required")
	}
	m := &Manager{
		repo:   repo,
		clock:  time.Now,
		tick:   time.Second,
		logger: slog.Default(),
		errs:   make(chan error, errorBuffer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CheckIns emits the ordered view on every tick and on every change of the
// collection until ctx is done.
func (m *Manager) CheckIns(ctx context.Context) <-chan []models.CheckIn {
	return stream.CombineLatest2(ctx, stream.Interval(ctx, m.tick), m.repo.Subscribe(ctx),
		func(_ time.Time, snapshot []models.CheckIn) []models.CheckIn {
			view := Partition(snapshot, m.clock())
			m.metrics.SetActive(countActive(view))
			return view
		})
}

// Errors carries checkout failures, separate from the view. Failures are
// dropped when nobody drains the channel.
func (m *Manager) Errors() <-chan error {
	return m.errs
}

// List returns the ordered view as of now.
func (m *Manager) List(ctx context.Context) ([]models.CheckIn, error) {
	snapshot, err := m.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Partition(snapshot, m.clock()), nil
}

// Run expires overdue check-ins on every tick until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()
	for {
		if _, err := m.ExpireDue(ctx); err != nil && ctx.Err() == nil {
			m.logger.WarnContext(ctx, "check-in expiry sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ExpireDue marks every active check-in whose end has passed as completed.
func (m *Manager) ExpireDue(ctx context.Context) (int, error) {
	now := m.clock()
	snapshot, err := m.repo.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if !slices.ContainsFunc(snapshot, func(c models.CheckIn) bool { return isOverdue(c, now) }) {
		return 0, nil
	}

	var expired int
	_, err = m.repo.Modify(ctx, func(list []models.CheckIn) ([]models.CheckIn, error) {
		expired = 0
		for i := range list {
			if isOverdue(list[i], now) {
				list[i].Completed = true
				expired++
			}
		}
		return list, nil
	})
	if err != nil {
		return 0, fmt.Errorf("expire check-ins: %w", err)
	}
	m.metrics.IncrementCheckouts("expiry", expired)
	m.logger.DebugContext(ctx, "check-ins expired", "count", expired)
	return expired, nil
}

// Checkout completes a check-in now. If now is before its end, the end moves
// back to now. Failures are returned and also sent on Errors.
func (m *Manager) Checkout(ctx context.Context, id domain.CheckInID) error {
	now := m.clock()
	_, err := m.repo.Modify(ctx, func(list []models.CheckIn) ([]models.CheckIn, error) {
		i := slices.IndexFunc(list, func(c models.CheckIn) bool { return c.ID == id })
		if i < 0 {
			return nil, sentinel.ErrNotFound
		}
		if list[i].Completed {
			return list, nil
		}
		list[i].Completed = true
		if now.Before(list[i].CheckInEnd) {
			list[i].CheckInEnd = now
		}
		if list[i].CheckInEnd.Before(list[i].CheckInStart) {
			list[i].CheckInEnd = list[i].CheckInStart
		}
		return list, nil
	})
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrCheckout, id, err)
		m.metrics.IncrementCheckoutFailure()
		m.logger.ErrorContext(ctx, "checkout failed", "check_in_id", id, "error", err)
		m.report(err)
		return err
	}
	m.metrics.IncrementCheckouts("manual", 1)
	m.logger.InfoContext(ctx, "checked out", "check_in_id", id)
	return nil
}

func (m *Manager) report(err error) {
	select {
	case m.errs <- err:
	default:
		m.logger.Warn("check-in error channel full, dropping error", "error", err)
	}
}

// Delete removes the given check-ins. No ids means every check-in.
func (m *Manager) Delete(ctx context.Context, ids []domain.CheckInID) error {
	if len(ids) == 0 {
		return m.ClearAll(ctx)
	}
	_, err := m.repo.Modify(ctx, func(list []models.CheckIn) ([]models.CheckIn, error) {
		return slices.DeleteFunc(list, func(c models.CheckIn) bool {
			return slices.Contains(ids, c.ID)
		}), nil
	})
	if err != nil {
		return fmt.Errorf("delete check-ins: %w", err)
	}
	m.logger.InfoContext(ctx, "check-ins deleted", "count", len(ids))
	return nil
}

// ClearAll removes every check-in.
func (m *Manager) ClearAll(ctx context.Context) error {
	if _, err := m.repo.Modify(ctx, func([]models.CheckIn) ([]models.CheckIn, error) {
		return nil, nil
	}); err != nil {
		return fmt.Errorf("clear check-ins: %w", err)
	}
	m.logger.InfoContext(ctx, "check-ins cleared")
	return nil
}

// Add checks in at a verified trace location.
func (m *Manager) Add(ctx context.Context, req models.Request) (models.CheckIn, error) {
	if strings.TrimSpace(req.Location.ID) == "" {
		return models.CheckIn{}, dErrors.New(dErrors.CodeInvalidInput, "trace location id is required")
	}
	if req.Start.IsZero() || !req.Start.Before(req.End) {
		return models.CheckIn{}, dErrors.New(dErrors.CodeInvalidInput, "check-in start must be before its end")
	}
	c := models.CheckIn{
		ID:           domain.NewCheckInID(),
		Location:     req.Location,
		CheckInStart: req.Start,
		CheckInEnd:   req.End,
	}
	if _, err := m.repo.Modify(ctx, func(list []models.CheckIn) ([]models.CheckIn, error) {
		return append(list, c), nil
	}); err != nil {
		return models.CheckIn{}, fmt.Errorf("add check-in: %w", err)
	}
	m.logger.InfoContext(ctx, "checked in", "check_in_id", c.ID, "location", c.Location.ID)
	return c, nil
}

func isOverdue(c models.CheckIn, now time.Time) bool {
	return !c.Completed && !now.Before(c.CheckInEnd)
}

func countActive(view []models.CheckIn) int {
	n := 0
	for _, c := range view {
		if !c.Completed {
			n++
		}
	}
	return n
}
