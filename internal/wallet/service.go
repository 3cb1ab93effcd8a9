package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/d4rken/cwa-app-android/internal/admission"
	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/certificates"
	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// CertificateSource supplies wallet snapshots.
type CertificateSource interface {
	Snapshot(ctx context.Context) (certificates.Set, error)
	Subscribe(ctx context.Context) <-chan certificates.Set
}

// RulesetSource supplies the latest rule configuration.
type RulesetSource interface {
	Latest() *ruleset.RuleConfiguration
	Subscribe(ctx context.Context) <-chan *ruleset.RuleConfiguration
}

// ScenarioSource supplies admission scenarios and the user's selection.
type ScenarioSource interface {
	Scenarios(ctx context.Context) *admission.ScenarioSet
	SelectedScenarioID(ctx context.Context) (string, error)
	Revisions(ctx context.Context) <-chan uint64
}

// Service triggers evaluations: on demand, for everyone, and whenever an
// upstream input changes.
type Service struct {
	engine      *Engine
	certs       CertificateSource
	rules       RulesetSource
	scenarios   ScenarioSource
	parallelism int
	logger      *slog.Logger
}

type ServiceOption func(*Service)

// WithParallelism bounds how many selections RecomputeAll evaluates at once.
func WithParallelism(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

func NewService(engine *Engine, certs CertificateSource, rules RulesetSource, scenarios ScenarioSource, opts ...ServiceOption) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("wallet engine is required")
	}
	if certs == nil {
		return nil, fmt.Errorf("certificate source is required")
	}
	if rules == nil {
		return nil, fmt.Errorf("ruleset source is required")
	}
	if scenarios == nil {
		return nil, fmt.Errorf("scenario source is required")
	}
	s := &Service{
		engine:      engine,
		certs:       certs,
		rules:       rules,
		scenarios:   scenarios,
		parallelism: 4,
		logger:      engine.logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Recompute drops the cached entry for sel and evaluates it afresh.
func (s *Service) Recompute(ctx context.Context, sel PersonSelection) (*WalletInfo, error) {
	certs, sc, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}
	s.engine.Invalidate(sel)
	return s.engine.Evaluate(ctx, sel, certs, s.rules.Latest(), sc)
}

// RecomputeAll evaluates every person and the all-persons view. Each failure
// is reported under its selection key and does not affect the others.
func (s *Service) RecomputeAll(ctx context.Context) (map[string]error, error) {
	certs, sc, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}
	return s.recomputeAll(ctx, certs, s.rules.Latest(), sc), nil
}

func (s *Service) recomputeAll(ctx context.Context, certs certificates.Set, rs *ruleset.RuleConfiguration, sc Scenarios) map[string]error {
	selections := []PersonSelection{AllPersons{}}
	wanted := map[string]struct{}{AllPersons{}.Key(): {}}
	for _, id := range certs.Persons() {
		sel := SelectedPerson{ID: id}
		selections = append(selections, sel)
		wanted[sel.Key()] = struct{}{}
	}
	for key := range s.engine.All() {
		if _, ok := wanted[key]; !ok {
			s.engine.invalidateKey(key)
		}
	}

	var (
		mu   sync.Mutex
		errs = make(map[string]error)
		g    errgroup.Group
	)
	g.SetLimit(s.parallelism)
	for _, sel := range selections {
		g.Go(func() error {
			if _, err := s.engine.Evaluate(ctx, sel, certs, rs, sc); err != nil {
				mu.Lock()
				errs[sel.Key()] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// Clear drops every cached WalletInfo without recomputing.
func (s *Service) Clear(ctx context.Context) {
	s.engine.Clear()
	s.logger.InfoContext(ctx, "wallet infos cleared")
}

// RemovePerson drops the cached WalletInfo of one person.
func (s *Service) RemovePerson(ctx context.Context, id domain.PersonID) {
	s.engine.Invalidate(SelectedPerson{ID: id})
	s.logger.InfoContext(ctx, "wallet info removed", "person", id)
}

func (s *Service) WalletInfos() map[string]*WalletInfo {
	return s.engine.All()
}

func (s *Service) Subscribe(ctx context.Context) <-chan map[string]*WalletInfo {
	return s.engine.Subscribe(ctx)
}

// Watch recomputes every selection whenever the ruleset, the certificates or
// the scenarios change. It returns when ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	type inputs struct {
		rules *ruleset.RuleConfiguration
		certs certificates.Set
	}
	changes := stream.CombineLatest3(ctx,
		s.rules.Subscribe(ctx),
		s.certs.Subscribe(ctx),
		s.scenarios.Revisions(ctx),
		func(rs *ruleset.RuleConfiguration, certs certificates.Set, _ uint64) inputs {
			return inputs{rules: rs, certs: certs}
		},
	)
	for in := range changes {
		sc := s.scenarioInput(ctx)
		for key, err := range s.recomputeAll(ctx, in.certs, in.rules, sc) {
			if errors.Is(err, ErrSuperseded) || ctx.Err() != nil {
				continue
			}
			s.logger.WarnContext(ctx, "wallet recompute failed", "selection", key, "error", err)
		}
	}
	return ctx.Err()
}

func (s *Service) inputs(ctx context.Context) (certificates.Set, Scenarios, error) {
	certs, err := s.certs.Snapshot(ctx)
	if err != nil {
		return certificates.Set{}, Scenarios{}, fmt.Errorf("load certificates: %w", err)
	}
	return certs, s.scenarioInput(ctx), nil
}

func (s *Service) scenarioInput(ctx context.Context) Scenarios {
	selected, err := s.scenarios.SelectedScenarioID(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read selected scenario", "error", err)
	}
	return Scenarios{Set: s.scenarios.Scenarios(ctx), SelectedID: selected}
}
