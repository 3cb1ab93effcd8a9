package testresult

import (
	"context"
	"fmt"
	"time"

	"github.com/d4rken/cwa-app-android/internal/settings"
	"github.com/d4rken/cwa-app-android/internal/testresult/models"
)

const (
	KeyRegistrationToken = "submission.registration_token"
	KeyResultViewed      = "submission.test_result_viewed"
	KeyInitialTimestamp  = "polling.initial_timestamp"
	KeyNotificationSent  = "polling.notification_sent"
)

// PollingSettings reads and writes the durable polling flags. Each flag is a
// separate key, so each read or write is atomic on its own.
type PollingSettings struct {
	store settings.Store
}

func NewPollingSettings(store settings.Store) (*PollingSettings, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	return &PollingSettings{store: store}, nil
}

func (p *PollingSettings) RegistrationToken(ctx context.Context) (string, error) {
	token, _, err := settings.String(ctx, p.store, KeyRegistrationToken)
	return token, err
}

// SetRegistrationToken stores the token; an empty token removes it.
func (p *PollingSettings) SetRegistrationToken(ctx context.Context, token string) error {
	if token == "" {
		return p.store.Delete(ctx, KeyRegistrationToken)
	}
	return p.store.Set(ctx, KeyRegistrationToken, token)
}

func (p *PollingSettings) ResultViewed(ctx context.Context) (bool, error) {
	return settings.Bool(ctx, p.store, KeyResultViewed)
}

func (p *PollingSettings) SetResultViewed(ctx context.Context, viewed bool) error {
	return settings.SetBool(ctx, p.store, KeyResultViewed, viewed)
}

func (p *PollingSettings) NotificationSent(ctx context.Context) (bool, error) {
	return settings.Bool(ctx, p.store, KeyNotificationSent)
}

func (p *PollingSettings) SetNotificationSent(ctx context.Context, sent bool) error {
	return settings.SetBool(ctx, p.store, KeyNotificationSent, sent)
}

// InitialTimestamp returns the start of the polling window in epoch
// milliseconds; zero means polling is not running.
func (p *PollingSettings) InitialTimestamp(ctx context.Context) (int64, error) {
	return settings.Int64(ctx, p.store, KeyInitialTimestamp)
}

func (p *PollingSettings) SetInitialTimestamp(ctx context.Context, millis int64) error {
	return settings.SetInt64(ctx, p.store, KeyInitialTimestamp, millis)
}

// State gathers every flag for display.
func (p *PollingSettings) State(ctx context.Context) (models.PollingState, error) {
	var st models.PollingState
	ts, err := p.InitialTimestamp(ctx)
	if err != nil {
		return st, err
	}
	if ts != 0 {
		st.InitialPollingTimestamp = time.UnixMilli(ts).UTC()
	}
	if st.NotificationSent, err = p.NotificationSent(ctx); err != nil {
		return st, err
	}
	if st.ResultViewed, err = p.ResultViewed(ctx); err != nil {
		return st, err
	}
	token, err := p.RegistrationToken(ctx)
	if err != nil {
		return st, err
	}
	st.HasRegistrationToken = token != ""
	return st, nil
}
