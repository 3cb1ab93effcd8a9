package wallet

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/d4rken/cwa-app-android/internal/admission"
	"github.com/d4rken/cwa-app-android/internal/ccl/logic"
	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/certificates"
	"github.com/d4rken/cwa-app-android/internal/settings/store"
	"github.com/d4rken/cwa-app-android/pkg/domain"
)

type ServiceSuite struct {
	suite.Suite
	certs     *certificates.InMemoryRepository
	rules     *ruleset.Cache
	scenarios *admission.Repository
	service   *Service
}

func (s *ServiceSuite) SetupTest() {
	settings := store.NewInMemoryStore()
	var err error
	s.rules, err = ruleset.New(settings)
	s.Require().NoError(err)
	s.scenarios, err = admission.New(settings)
	s.Require().NoError(err)
	s.certs = certificates.NewInMemoryRepository(
		vaccination("v1", "alice", 2),
		vaccination("v2", "bob", 1),
	)

	engine := NewEngine(WithClock(func() time.Time { return fixedNow }))
	s.service, err = NewService(engine, s.certs, s.rules, s.scenarios, WithParallelism(2))
	s.Require().NoError(err)

	s.Require().NoError(s.rules.Update(context.Background(), []byte(rulesPayload)))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	engine := NewEngine()
	_, err := NewService(nil, s.certs, s.rules, s.scenarios)
	s.Error(err)
	_, err = NewService(engine, nil, s.rules, s.scenarios)
	s.Error(err)
	_, err = NewService(engine, s.certs, nil, s.scenarios)
	s.Error(err)
	_, err = NewService(engine, s.certs, s.rules, nil)
	s.Error(err)
}

// =============================================================================
// Manual triggers
// =============================================================================

func (s *ServiceSuite) TestRecomputeAll() {
	ctx := context.Background()

	s.Run("evaluates each person and the all view", func() {
		errs, err := s.service.RecomputeAll(ctx)
		s.Require().NoError(err)
		s.Empty(errs)
		s.Len(s.service.WalletInfos(), 3)
		s.Contains(s.service.WalletInfos(), "person:alice")
		s.Contains(s.service.WalletInfos(), "person:bob")
		s.Contains(s.service.WalletInfos(), "all")
	})

	s.Run("one person's failure leaves the others", func() {
		s.certs.Put(certificates.Certificate{
			ID:      "v3",
			Person:  "carol",
			Type:    domain.CertificateTypeVaccination,
			Payload: json.RawMessage(`{"r": []}`),
		})

		errs, err := s.service.RecomputeAll(ctx)
		s.Require().NoError(err)
		s.ErrorIs(errs["person:carol"], ErrEvaluation)
		s.ErrorIs(errs["person:carol"], logic.ErrMissingAttribute)
		s.Contains(errs, "all", "the union view includes carol")
		s.NotContains(errs, "person:alice")
		s.NotContains(errs, "person:bob")
		s.Contains(s.service.WalletInfos(), "person:alice")
	})

	s.Run("persons without certificates are dropped", func() {
		s.certs.RemovePerson("bob")
		s.certs.RemovePerson("carol")
		_, err := s.service.RecomputeAll(ctx)
		s.Require().NoError(err)
		s.NotContains(s.service.WalletInfos(), "person:bob")
	})
}

func (s *ServiceSuite) TestRecomputeReevaluatesOnePerson() {
	ctx := context.Background()
	first, err := s.service.Recompute(ctx, SelectedPerson{ID: "alice"})
	s.Require().NoError(err)

	second, err := s.service.Recompute(ctx, SelectedPerson{ID: "alice"})
	s.Require().NoError(err)
	s.NotSame(first, second, "manual trigger bypasses the cache")
	s.Equal(first.AdmissibleCertificates, second.AdmissibleCertificates)
}

func (s *ServiceSuite) TestClearAndRemovePerson() {
	ctx := context.Background()
	_, err := s.service.RecomputeAll(ctx)
	s.Require().NoError(err)

	s.service.RemovePerson(ctx, "alice")
	s.NotContains(s.service.WalletInfos(), "person:alice")
	s.Contains(s.service.WalletInfos(), "person:bob")

	s.service.Clear(ctx)
	s.Empty(s.service.WalletInfos())
}

// =============================================================================
// Upstream changes
// =============================================================================

func (s *ServiceSuite) TestWatchRecomputesOnChanges() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.service.Watch(ctx) }()

	s.Eventually(func() bool {
		return len(s.service.WalletInfos()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	s.Require().NoError(s.scenarios.Save(ctx, *scenarioSet()))
	s.Eventually(func() bool {
		info, ok := s.service.WalletInfos()["person:alice"]
		return ok && len(info.Scenarios) == 2
	}, 2*time.Second, 10*time.Millisecond)

	s.Require().NoError(s.rules.Update(ctx, []byte(`{"version": "9", "rules": []}`)))
	s.Eventually(func() bool {
		info, ok := s.service.WalletInfos()["person:bob"]
		return ok && info.RulesetVersion == "9"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(2 * time.Second):
		s.Fail("watch did not stop")
	}
}
