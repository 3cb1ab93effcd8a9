// Package store persists the check-in collection as one JSON document in the
// settings store and publishes every accepted change.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/d4rken/cwa-app-android/internal/checkin/models"
	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/internal/settings"
)

const KeyCheckIns = "presence_tracing.check_ins"

type Store struct {
	settings settings.Store
	logger   *slog.Logger

	// mu serialises read-modify-write cycles; published snapshots are never
	// mutated afterwards.
	mu       sync.Mutex
	snapshot *stream.Value[[]models.CheckIn]
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New loads the persisted collection. An unreadable document starts empty.
func New(ctx context.Context, backend settings.Store, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	s := &Store{settings: backend, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := backend.Get(ctx, KeyCheckIns)
	if err != nil {
		return nil, fmt.Errorf("load check-ins: %w", err)
	}
	var initial []models.CheckIn
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &initial); err != nil {
			s.logger.WarnContext(ctx, "discarding unreadable check-ins", "error", err)
			initial = nil
		}
	}
	s.snapshot = stream.NewValue(initial)
	return s, nil
}

// Snapshot returns a copy of the current collection.
func (s *Store) Snapshot(ctx context.Context) ([]models.CheckIn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.snapshot.Get()), nil
}

// Subscribe publishes the collection now and after every change. Receivers
// must not modify the slices they get.
func (s *Store) Subscribe(ctx context.Context) <-chan []models.CheckIn {
	return s.snapshot.Subscribe(ctx)
}

// Modify applies fn to a copy of the collection, persists the result and then
// publishes it. If fn or the write fails nothing changes.
func (s *Store) Modify(ctx context.Context, fn func([]models.CheckIn) ([]models.CheckIn, error)) ([]models.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.snapshot.Get()))
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode check-ins: %w", err)
	}
	if len(next) == 0 {
		err = s.settings.Delete(ctx, KeyCheckIns)
	} else {
		err = s.settings.Set(ctx, KeyCheckIns, string(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("persist check-ins: %w", err)
	}
	s.snapshot.Set(next)
	return slices.Clone(next), nil
}
