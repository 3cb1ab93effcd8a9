package checkin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/d4rken/cwa-app-android/internal/checkin/models"
	"github.com/d4rken/cwa-app-android/internal/checkin/store"
	settingsstore "github.com/d4rken/cwa-app-android/internal/settings/store"
	"github.com/d4rken/cwa-app-android/pkg/domain"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

var base = time.Date(2021, 5, 1, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func checkIn(start, end int, completed bool) models.CheckIn {
	return models.CheckIn{
		ID:           domain.NewCheckInID(),
		Location:     models.TraceLocation{ID: "loc"},
		CheckInStart: at(start),
		CheckInEnd:   at(end),
		Completed:    completed,
	}
}

func ends(view []models.CheckIn) []time.Time {
	out := make([]time.Time, len(view))
	for i, c := range view {
		out[i] = c.CheckInEnd
	}
	return out
}

type ManagerSuite struct {
	suite.Suite
	clock   *fakeClock
	repo    *store.Store
	manager *Manager
}

func (s *ManagerSuite) SetupTest() {
	s.clock = &fakeClock{now: at(0)}
	repo, err := store.New(context.Background(), settingsstore.NewInMemoryStore())
	s.Require().NoError(err)
	s.repo = repo
	s.manager, err = New(repo, WithClock(s.clock.Now), WithTick(10*time.Millisecond))
	s.Require().NoError(err)
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) seed(items ...models.CheckIn) {
	_, err := s.repo.Modify(context.Background(), func(list []models.CheckIn) ([]models.CheckIn, error) {
		return append(list, items...), nil
	})
	s.Require().NoError(err)
}

func (s *ManagerSuite) stored(id domain.CheckInID) models.CheckIn {
	list, err := s.repo.Snapshot(context.Background())
	s.Require().NoError(err)
	for _, c := range list {
		if c.ID == id {
			return c
		}
	}
	s.FailNow("check-in not stored", id.String())
	return models.CheckIn{}
}

// =============================================================================
// View ordering
// =============================================================================

func (s *ManagerSuite) TestPartitionOrdersActiveThenCompleted() {
	input := []models.CheckIn{
		checkIn(-60, 10, false),
		checkIn(-60, 3, true),
		checkIn(-60, 5, false),
		checkIn(-60, 8, true),
		checkIn(-60, 20, false),
	}

	view := Partition(input, at(0))

	s.Equal([]time.Time{at(5), at(10), at(20), at(8), at(3)}, ends(view))
	s.False(view[0].Completed)
	s.True(view[3].Completed)
	s.False(input[1].CheckInEnd.Equal(view[1].CheckInEnd), "input order untouched")
}

func (s *ManagerSuite) TestPartitionTreatsPassedEndAsCompleted() {
	input := []models.CheckIn{checkIn(-60, 10, false), checkIn(-60, 30, false)}

	view := Partition(input, at(10))

	s.Equal([]time.Time{at(30), at(10)}, ends(view))
	s.True(view[1].Completed)
	s.False(input[0].Completed)
}

func (s *ManagerSuite) TestListUsesCurrentTime() {
	s.seed(checkIn(-60, 10, false), checkIn(-60, 30, false))
	s.clock.Set(at(15))

	view, err := s.manager.List(context.Background())
	s.Require().NoError(err)

	s.Equal([]time.Time{at(30), at(10)}, ends(view))
	s.True(view[1].Completed)
}

func (s *ManagerSuite) TestCheckInsEmitsOnChangeAndTick() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	active := checkIn(-10, 5, false)
	s.seed(active)

	views := s.manager.CheckIns(ctx)
	first := s.next(views)
	s.Require().Len(first, 1)
	s.False(first[0].Completed)

	s.clock.Set(at(5))
	s.Eventually(func() bool {
		v := s.next(views)
		return len(v) == 1 && v[0].Completed
	}, 2*time.Second, time.Millisecond, "tick re-derives the view without a repository change")

	s.seed(checkIn(0, 30, false))
	s.Eventually(func() bool {
		return len(s.next(views)) == 2
	}, 2*time.Second, time.Millisecond)
}

func (s *ManagerSuite) next(views <-chan []models.CheckIn) []models.CheckIn {
	select {
	case v := <-views:
		return v
	case <-time.After(time.Second):
		return nil
	}
}

// =============================================================================
// Checkout
// =============================================================================

func (s *ManagerSuite) TestCheckout() {
	ctx := context.Background()

	s.Run("moves end back to now", func() {
		c := checkIn(-30, 60, false)
		s.seed(c)

		s.Require().NoError(s.manager.Checkout(ctx, c.ID))

		got := s.stored(c.ID)
		s.True(got.Completed)
		s.Equal(at(0), got.CheckInEnd)
	})

	s.Run("keeps an end that already passed", func() {
		c := checkIn(-30, -5, false)
		s.seed(c)

		s.Require().NoError(s.manager.Checkout(ctx, c.ID))

		got := s.stored(c.ID)
		s.True(got.Completed)
		s.Equal(at(-5), got.CheckInEnd)
	})

	s.Run("completed check-in is left alone", func() {
		c := checkIn(-30, -10, true)
		s.seed(c)

		s.Require().NoError(s.manager.Checkout(ctx, c.ID))
		s.Equal(at(-10), s.stored(c.ID).CheckInEnd)

		future := checkIn(-30, 60, true)
		s.seed(future)
		s.Require().NoError(s.manager.Checkout(ctx, future.ID))
		s.Equal(at(60), s.stored(future.ID).CheckInEnd)
	})

	s.Run("unknown id is reported on the error channel", func() {
		err := s.manager.Checkout(ctx, domain.NewCheckInID())
		s.Require().ErrorIs(err, ErrCheckout)
		s.ErrorIs(err, sentinel.ErrNotFound)

		select {
		case reported := <-s.manager.Errors():
			s.Equal(err, reported)
		default:
			s.Fail("error not reported")
		}
	})
}

func (s *ManagerSuite) TestCheckoutFailureDoesNotStopTheView() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := checkIn(-30, 60, false)
	s.seed(c)
	views := s.manager.CheckIns(ctx)
	s.Require().Len(s.next(views), 1)

	failing, fail := context.WithCancel(ctx)
	fail()
	err := s.manager.Checkout(failing, c.ID)
	s.Require().ErrorIs(err, ErrCheckout)
	s.ErrorIs(<-s.manager.Errors(), context.Canceled)
	s.False(s.stored(c.ID).Completed)

	s.Len(s.next(views), 1, "view keeps ticking")
	s.Require().NoError(s.manager.Checkout(ctx, c.ID))
	s.True(s.stored(c.ID).Completed)
}

func (s *ManagerSuite) TestErrorChannelDropsWhenFull() {
	ctx := context.Background()
	for i := 0; i < errorBuffer+5; i++ {
		s.Error(s.manager.Checkout(ctx, domain.NewCheckInID()))
	}
	s.Len(s.manager.Errors(), errorBuffer)
}

// =============================================================================
// Expiry, deletion, creation
// =============================================================================

func (s *ManagerSuite) TestExpireDue() {
	ctx := context.Background()
	overdue := checkIn(-60, 0, false)
	running := checkIn(-60, 30, false)
	s.seed(overdue, running)

	n, err := s.manager.ExpireDue(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.True(s.stored(overdue.ID).Completed)
	s.Equal(at(0), s.stored(overdue.ID).CheckInEnd)
	s.False(s.stored(running.ID).Completed)

	n, err = s.manager.ExpireDue(ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *ManagerSuite) TestRunExpiresUntilCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	c := checkIn(-60, 5, false)
	s.seed(c)

	done := make(chan error, 1)
	go func() { done <- s.manager.Run(ctx) }()

	s.clock.Set(at(6))
	s.Eventually(func() bool {
		list, err := s.repo.Snapshot(context.Background())
		return err == nil && len(list) == 1 && list[0].Completed
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	s.ErrorIs(<-done, context.Canceled)
}

func (s *ManagerSuite) TestDelete() {
	ctx := context.Background()
	a, b, c := checkIn(0, 10, false), checkIn(0, 20, true), checkIn(0, 30, false)
	s.seed(a, b, c)

	s.Require().NoError(s.manager.Delete(ctx, []domain.CheckInID{b.ID, domain.NewCheckInID()}))
	list, err := s.repo.Snapshot(ctx)
	s.Require().NoError(err)
	s.Len(list, 2)

	s.Require().NoError(s.manager.Delete(ctx, nil), "no selector clears everything")
	list, err = s.repo.Snapshot(ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ManagerSuite) TestClearAll() {
	ctx := context.Background()
	s.seed(checkIn(0, 10, false), checkIn(0, 20, false))

	s.Require().NoError(s.manager.ClearAll(ctx))
	list, err := s.repo.Snapshot(ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ManagerSuite) TestAdd() {
	ctx := context.Background()
	loc := models.TraceLocation{ID: "venue-1", Description: "Café"}

	s.Run("creates an active check-in", func() {
		c, err := s.manager.Add(ctx, models.Request{Location: loc, Start: at(0), End: at(120)})
		s.Require().NoError(err)
		s.False(c.ID.IsNil())
		s.Equal(models.StateActive, s.stored(c.ID).StateAt(at(1)))
	})

	s.Run("rejects inverted interval", func() {
		_, err := s.manager.Add(ctx, models.Request{Location: loc, Start: at(10), End: at(10)})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects missing location", func() {
		_, err := s.manager.Add(ctx, models.Request{Start: at(0), End: at(10)})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
