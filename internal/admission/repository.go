// Package admission stores the admission scenario definitions and the user's
// scenario selection. Scenarios are re-parsed from settings on every read.
package admission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/internal/settings"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
)

const (
	KeyScenarios        = "ccl.admission_check_scenarios"
	KeySelectedScenario = "ccl.admission_scenario_id"
)

type Repository struct {
	settings settings.Store
	logger   *slog.Logger
	revision *stream.Value[uint64]
}

type Option func(*Repository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func New(store settings.Store, opts ...Option) (*Repository, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	r := &Repository{
		settings: store,
		logger:   slog.Default(),
		revision: stream.NewValue[uint64](0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Scenarios returns the stored scenario set, or nil when it is absent, empty or
// cannot be parsed. It never writes.
func (r *Repository) Scenarios(ctx context.Context) *ScenarioSet {
	raw, ok, err := r.settings.Get(ctx, KeyScenarios)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to read admission scenarios", "error", err)
		return nil
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	var set *ScenarioSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		r.logger.DebugContext(ctx, "discarding unparsable admission scenarios", "error", err)
		return nil
	}
	// A stored JSON null means no restriction is known.
	return set
}

// Save stores set canonically and returns once the write has completed.
// Scenario logic is stored compacted, so reads return the compact form.
func (r *Repository) Save(ctx context.Context, set ScenarioSet) error {
	seen := make(map[string]struct{}, len(set.Scenarios))
	scenarios := make([]AdmissionScenario, len(set.Scenarios))
	for i, sc := range set.Scenarios {
		if sc.Identifier == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "scenario identifier is required")
		}
		if _, dup := seen[sc.Identifier]; dup {
			return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("duplicate scenario identifier %q", sc.Identifier))
		}
		seen[sc.Identifier] = struct{}{}
		if len(sc.Logic) > 0 {
			var compact bytes.Buffer
			if err := json.Compact(&compact, sc.Logic); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("scenario %q has malformed logic", sc.Identifier))
			}
			sc.Logic = compact.Bytes()
		}
		scenarios[i] = sc
	}
	set.Scenarios = scenarios

	raw, err := encode(set)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "failed to encode admission scenarios")
	}
	if err := r.settings.Set(ctx, KeyScenarios, raw); err != nil {
		return fmt.Errorf("save admission scenarios: %w", err)
	}
	r.bump()
	r.logger.InfoContext(ctx, "admission scenarios saved", "count", len(set.Scenarios))
	return nil
}

// SelectedScenarioID returns the chosen scenario, empty when none is chosen.
func (r *Repository) SelectedScenarioID(ctx context.Context) (string, error) {
	id, _, err := settings.String(ctx, r.settings, KeySelectedScenario)
	if err != nil {
		return "", fmt.Errorf("selected scenario: %w", err)
	}
	return id, nil
}

// SelectScenario records the chosen scenario. An empty identifier clears it.
func (r *Repository) SelectScenario(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	var err error
	if identifier == "" {
		err = r.settings.Delete(ctx, KeySelectedScenario)
	} else {
		err = r.settings.Set(ctx, KeySelectedScenario, identifier)
	}
	if err != nil {
		return fmt.Errorf("select scenario: %w", err)
	}
	r.bump()
	return nil
}

// Revision increases with every save or selection change.
func (r *Repository) Revision() uint64 {
	return r.revision.Get()
}

// Revisions publishes the revision counter, starting with the current value.
func (r *Repository) Revisions(ctx context.Context) <-chan uint64 {
	return r.revision.Subscribe(ctx)
}

// encode writes the canonical form: compact, no HTML escaping, so that logic
// operators like ">=" survive a round trip byte for byte.
func encode(set ScenarioSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(set); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (r *Repository) bump() {
	r.revision.Update(func(n uint64) uint64 { return n + 1 })
}
