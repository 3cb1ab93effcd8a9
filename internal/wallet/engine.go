// Package wallet evaluates each person's certificates against the current
// ruleset and admission scenarios and caches one WalletInfo per selection.
package wallet

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/d4rken/cwa-app-android/internal/ccl/logic"
	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/certificates"
	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/internal/wallet/metrics"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
)

const tracerName = "github.com/d4rken/cwa-app-android/internal/wallet"

var (
	// ErrEvaluation wraps logic failures for one selection. The previous
	// WalletInfo of that selection is kept.
	ErrEvaluation = errors.New("wallet evaluation failed")
	// ErrSuperseded means the inputs were invalidated while the evaluation ran,
	// so its result was dropped.
	ErrSuperseded = errors.New("wallet evaluation superseded")
)

type cacheEntry struct {
	fingerprint uint64
	ticket      uint64
	info        *WalletInfo
}

// Engine owns the WalletInfo cache.
type Engine struct {
	clock    func() time.Time
	language string
	test     predicate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	flights singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
	// gens is bumped by every invalidation of a key; a computation started
	// under an older generation is not published.
	gens map[string]uint64
	// tickets orders computations of a key so an older one never overwrites
	// a newer one.
	tickets map[string]uint64
	infos   *stream.Value[map[string]*WalletInfo]
}

type EngineOption func(*Engine)

func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLanguage sets the language rule descriptions are picked in.
func WithLanguage(lang string) EngineOption {
	return func(e *Engine) {
		e.language = lang
	}
}

func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		clock:    time.Now,
		language: "de",
		test:     logic.Test,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
		entries:  make(map[string]cacheEntry),
		gens:     make(map[string]uint64),
		tickets:  make(map[string]uint64),
		infos:    stream.NewValue(map[string]*WalletInfo{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the WalletInfo for sel. When the inputs match the cached
// entry it is returned without evaluating. Concurrent calls for the same
// inputs share one evaluation.
func (e *Engine) Evaluate(ctx context.Context, sel PersonSelection, certs certificates.Set, rs *ruleset.RuleConfiguration, sc Scenarios) (*WalletInfo, error) {
	if sel == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person selection is required")
	}
	key := sel.Key()
	scoped := scope(sel, certs)
	fp := fingerprint(rs, scoped, sc)

	e.mu.Lock()
	if ent, ok := e.entries[key]; ok && ent.fingerprint == fp {
		e.mu.Unlock()
		e.metrics.IncrementCacheHit()
		return ent.info, nil
	}
	gen := e.gens[key]
	e.mu.Unlock()
	e.metrics.IncrementCacheMiss()

	// The shared evaluation outlives any single caller; generation and ticket
	// checks in publish keep it from caching stale inputs.
	flight := fmt.Sprintf("%s/%x/%d", key, fp, gen)
	ch := e.flights.DoChan(flight, func() (any, error) {
		return e.compute(context.WithoutCancel(ctx), key, gen, fp, scoped, rs, sc, sel)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*WalletInfo), nil
	}
}

func (e *Engine) compute(ctx context.Context, key string, gen, fp uint64, certs certificates.Set, rs *ruleset.RuleConfiguration, sc Scenarios, sel PersonSelection) (*WalletInfo, error) {
	e.mu.Lock()
	// A flight for the same inputs may have published since the caller looked.
	if ent, ok := e.entries[key]; ok && ent.fingerprint == fp && e.gens[key] == gen {
		e.mu.Unlock()
		return ent.info, nil
	}
	e.tickets[key]++
	ticket := e.tickets[key]
	e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "wallet.Evaluate", trace.WithAttributes(
		attribute.String("wallet.selection", key),
		attribute.String("ccl.ruleset_version", versionOf(rs)),
		attribute.Int("wallet.certificates", certs.Len()),
	))
	defer span.End()

	start := time.Now()
	ev := &evaluation{
		now:      e.clock(),
		language: e.language,
		test:     e.test,
	}
	info, err := ev.run(sel, certs, rs, sc)
	e.metrics.ObserveEvaluateLatency(time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		e.metrics.IncrementEvaluation("error")
		e.logger.WarnContext(ctx, "wallet evaluation failed", "selection", key, "error", err)
		return nil, fmt.Errorf("%w for %s: %w", ErrEvaluation, key, err)
	}
	if err := e.publish(key, gen, ticket, fp, info); err != nil {
		e.metrics.IncrementEvaluation("superseded")
		e.logger.DebugContext(ctx, "dropping superseded wallet evaluation", "selection", key)
		return nil, err
	}
	e.metrics.IncrementEvaluation("ok")
	return info, nil
}

func (e *Engine) publish(key string, gen, ticket, fp uint64, info *WalletInfo) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gens[key] != gen {
		return ErrSuperseded
	}
	if ent, ok := e.entries[key]; ok && ent.ticket > ticket {
		return ErrSuperseded
	}
	e.entries[key] = cacheEntry{fingerprint: fp, ticket: ticket, info: info}
	e.snapshotLocked()
	return nil
}

// Invalidate drops the entry for sel and discards any evaluation in flight for it.
func (e *Engine) Invalidate(sel PersonSelection) {
	e.invalidateKey(sel.Key())
}

func (e *Engine) invalidateKey(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gens[key]++
	delete(e.entries, key)
	e.snapshotLocked()
}

// Clear drops every entry. It does not trigger recomputation.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key := range e.tickets {
		e.gens[key]++
	}
	for key := range e.entries {
		e.gens[key]++
	}
	e.entries = make(map[string]cacheEntry)
	e.snapshotLocked()
}

// Get returns the cached WalletInfo for sel.
func (e *Engine) Get(sel PersonSelection) (*WalletInfo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ent, ok := e.entries[sel.Key()]
	return ent.info, ok
}

// All returns the cached infos keyed by selection key.
func (e *Engine) All() map[string]*WalletInfo {
	return e.infos.Get()
}

// Subscribe publishes the cache contents after every change.
func (e *Engine) Subscribe(ctx context.Context) <-chan map[string]*WalletInfo {
	return e.infos.Subscribe(ctx)
}

func (e *Engine) snapshotLocked() {
	snap := make(map[string]*WalletInfo, len(e.entries))
	for key, ent := range e.entries {
		snap[key] = ent.info
	}
	e.infos.Set(snap)
}

func versionOf(rs *ruleset.RuleConfiguration) string {
	if rs == nil {
		return ""
	}
	return rs.Version
}

// fingerprint hashes the three evaluation inputs.
func fingerprint(rs *ruleset.RuleConfiguration, certs certificates.Set, sc Scenarios) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], rs.Fingerprint())
	_, _ = d.Write(buf[:])
	certificates.HashField(d, []byte(versionOf(rs)))
	binary.LittleEndian.PutUint64(buf[:], certs.Fingerprint())
	_, _ = d.Write(buf[:])
	certificates.HashField(d, []byte(sc.SelectedID))
	if sc.Set == nil {
		_, _ = d.Write([]byte{0})
		return d.Sum64()
	}
	_, _ = d.Write([]byte{1})
	certificates.HashField(d, []byte(sc.Set.LabelText))
	binary.LittleEndian.PutUint64(buf[:], uint64(len(sc.Set.Scenarios)))
	_, _ = d.Write(buf[:])
	for _, s := range sc.Set.Scenarios {
		certificates.HashField(d, []byte(s.Identifier))
		certificates.HashField(d, []byte(s.Title))
		if s.Enabled {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s.CertificateTypes)))
		_, _ = d.Write(buf[:])
		for _, t := range s.CertificateTypes {
			certificates.HashField(d, []byte(t))
		}
		certificates.HashField(d, s.Logic)
	}
	return d.Sum64()
}
