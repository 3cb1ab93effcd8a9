// Package ruleset holds the latest rule configuration. Refreshes replace it
// wholesale; readers always see one complete snapshot.
package ruleset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"

	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/internal/settings"
)

// KeyConfig is where the last accepted payload is kept across restarts.
const KeyConfig = "ccl.config"

// ErrParse is returned for payloads that do not describe a usable configuration.
var ErrParse = errors.New("ruleset parse error")

type Cache struct {
	settings settings.Store
	logger   *slog.Logger
	latest   *stream.Value[*RuleConfiguration]
}

type Option func(*Cache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func New(store settings.Store, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	c := &Cache{
		settings: store,
		logger:   slog.Default(),
		latest:   stream.NewValue[*RuleConfiguration](nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Latest returns the current snapshot, nil before any configuration arrived.
func (c *Cache) Latest() *RuleConfiguration {
	return c.latest.Get()
}

// Subscribe publishes the current snapshot and every replacement.
func (c *Cache) Subscribe(ctx context.Context) <-chan *RuleConfiguration {
	return c.latest.Subscribe(ctx)
}

// Update parses raw, persists it and publishes it. On any failure the previous
// snapshot stays in place.
func (c *Cache) Update(ctx context.Context, raw []byte) error {
	cfg, err := Parse(raw)
	if err != nil {
		return err
	}
	if err := c.settings.Set(ctx, KeyConfig, string(raw)); err != nil {
		return fmt.Errorf("persist ruleset: %w", err)
	}
	c.latest.Set(cfg)
	c.logger.InfoContext(ctx, "ruleset updated", "version", cfg.Version, "rules", len(cfg.Rules))
	return nil
}

// Load restores the persisted payload. A missing or corrupt payload leaves the
// cache empty; only backend read failures are returned.
func (c *Cache) Load(ctx context.Context) error {
	raw, ok, err := c.settings.Get(ctx, KeyConfig)
	if err != nil {
		return fmt.Errorf("load ruleset: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	cfg, err := Parse([]byte(raw))
	if err != nil {
		c.logger.WarnContext(ctx, "ignoring persisted ruleset", "error", err)
		return nil
	}
	c.latest.Set(cfg)
	c.logger.DebugContext(ctx, "ruleset restored", "version", cfg.Version)
	return nil
}

// Parse decodes and validates a rule configuration payload.
func Parse(raw []byte) (*RuleConfiguration, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrParse)
	}
	var cfg RuleConfiguration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("%w: version is required", ErrParse)
	}
	seen := make(map[string]struct{}, len(cfg.Rules))
	for i, r := range cfg.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: rule %d has no id", ErrParse, i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate rule id %q", ErrParse, r.ID)
		}
		seen[r.ID] = struct{}{}
		if len(bytes.TrimSpace(r.Logic)) == 0 {
			return nil, fmt.Errorf("%w: rule %q has no logic", ErrParse, r.ID)
		}
		if !r.ValidFrom.IsZero() && !r.ValidTo.IsZero() && !r.ValidFrom.Before(r.ValidTo) {
			return nil, fmt.Errorf("%w: rule %q validity window is empty", ErrParse, r.ID)
		}
	}
	cfg.fingerprint = xxhash.Sum64(raw)
	return &cfg, nil
}
