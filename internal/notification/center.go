// Package notification records the local notifications the engine raises.
// Presentation happens elsewhere; the center keeps what is currently shown.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/d4rken/cwa-app-android/internal/testresult/models"
)

const (
	RiskLevelScoreNotificationID      = 100
	TestResultAvailableNotificationID = 101
)

// Notification is one shown notification.
type Notification struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	ShownAt time.Time `json:"shown_at"`
}

type Center struct {
	mu     sync.Mutex
	shown  map[int]Notification
	clock  func() time.Time
	logger *slog.Logger
}

type Option func(*Center)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Center) {
		c.logger = logger
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Center) {
		c.clock = clock
	}
}

func NewCenter(opts ...Option) *Center {
	c := &Center{
		shown:  make(map[int]Notification),
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show displays n, replacing any notification with the same ID.
func (c *Center) Show(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	n.ShownAt = c.clock()
	c.shown[n.ID] = n
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "notification shown", "notification_id", n.ID, "title", n.Title)
	return nil
}

// ShowTestResultAvailable announces that a test result can be viewed. The
// result itself is deliberately left out of the text.
func (c *Center) ShowTestResultAvailable(ctx context.Context, result models.TestResult) error {
	if !result.IsTerminal() {
		return fmt.Errorf("test result %s is not available yet", result)
	}
	return c.Show(ctx, Notification{
		ID:    TestResultAvailableNotificationID,
		Title: "Test result available",
		Body:  "Your test result is available. Open the app to view it.",
	})
}

// Cancel removes a shown notification. Cancelling one that is not shown is fine.
func (c *Center) Cancel(ctx context.Context, id int) error {
	c.mu.Lock()
	_, existed := c.shown[id]
	delete(c.shown, id)
	c.mu.Unlock()
	if existed {
		c.logger.DebugContext(ctx, "notification cancelled", "notification_id", id)
	}
	return nil
}

// Shown returns the notifications currently displayed.
func (c *Center) Shown() map[int]Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.shown)
}
