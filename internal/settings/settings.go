// Package settings is the durable key/value layer every engine component keeps
// its state in. Reads and writes are atomic per key; nothing spans keys.
package settings

import (
	"context"
	"fmt"
	"strconv"
)

// Store is the persistence collaborator. Get reports ok=false for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Bool reads a boolean flag; absent means false.
func Bool(ctx context.Context, s Store, key string) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

// SetBool writes a boolean flag.
func SetBool(ctx context.Context, s Store, key string, v bool) error {
	if err := s.Set(ctx, key, strconv.FormatBool(v)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Int64 reads an integer; absent means zero.
func Int64(ctx context.Context, s Store, key string) (int64, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

// SetInt64 writes an integer.
func SetInt64(ctx context.Context, s Store, key string, v int64) error {
	if err := s.Set(ctx, key, strconv.FormatInt(v, 10)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// String reads a string value; absent yields ok=false.
func String(ctx context.Context, s Store, key string) (string, bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, ok, nil
}
