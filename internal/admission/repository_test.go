package admission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/d4rken/cwa-app-android/internal/settings/store"
	"github.com/d4rken/cwa-app-android/pkg/domain"
	dErrors "github.com/d4rken/cwa-app-android/pkg/domain-errors"
)

type RepositorySuite struct {
	suite.Suite
	store *store.InMemoryStore
	repo  *Repository
}

func (s *RepositorySuite) SetupTest() {
	s.store = store.NewInMemoryStore()
	repo, err := New(s.store)
	s.Require().NoError(err)
	s.repo = repo
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func sampleSet() ScenarioSet {
	return ScenarioSet{
		LabelText: "Bundesland",
		Scenarios: []AdmissionScenario{
			{
				Identifier:       "DE",
				Title:            "Bundesweit",
				Enabled:          true,
				CertificateTypes: []domain.CertificateType{domain.CertificateTypeVaccination},
				Logic:            json.RawMessage(`{">=":[{"var":"payload.v.0.dn"},2]}`),
			},
			{
				Identifier: "BW",
				Title:      "Baden-Württemberg",
				Subtitle:   "nicht verfügbar",
				Enabled:    false,
				Logic:      json.RawMessage(`true`),
			},
		},
	}
}

// =============================================================================
// Scenarios - parsing of the stored string
// =============================================================================

func (s *RepositorySuite) TestScenarios() {
	ctx := context.Background()

	s.Run("absent key yields nil", func() {
		s.Nil(s.repo.Scenarios(ctx))
	})

	s.Run("empty string yields nil", func() {
		s.Require().NoError(s.store.Set(ctx, KeyScenarios, ""))
		s.Nil(s.repo.Scenarios(ctx))
	})

	s.Run("corrupt string yields nil without rewriting it", func() {
		s.Require().NoError(s.store.Set(ctx, KeyScenarios, "something else"))
		s.Nil(s.repo.Scenarios(ctx))

		raw, ok, err := s.store.Get(ctx, KeyScenarios)
		s.Require().NoError(err)
		s.True(ok)
		s.Equal("something else", raw)
	})

	s.Run("json null yields nil", func() {
		s.Require().NoError(s.store.Set(ctx, KeyScenarios, "null"))
		s.Nil(s.repo.Scenarios(ctx))
	})

	s.Run("read failure yields nil", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		s.Nil(s.repo.Scenarios(cancelled))
	})
}

// =============================================================================
// Save - round trip and validation
// =============================================================================

func (s *RepositorySuite) TestSave() {
	ctx := context.Background()

	s.Run("round trip returns the saved set", func() {
		set := sampleSet()
		s.Require().NoError(s.repo.Save(ctx, set))

		got := s.repo.Scenarios(ctx)
		s.Require().NotNil(got)
		s.Equal(set, *got)
	})

	s.Run("spaced logic reads back compacted", func() {
		set := sampleSet()
		spaced := json.RawMessage(`{"==": [1, 1]}`)
		set.Scenarios[0].Logic = spaced
		s.Require().NoError(s.repo.Save(ctx, set))

		got := s.repo.Scenarios(ctx)
		s.Require().NotNil(got)
		s.JSONEq(string(spaced), string(got.Scenarios[0].Logic))
		s.Equal(`{"==":[1,1]}`, string(got.Scenarios[0].Logic))
		s.Equal(`{"==": [1, 1]}`, string(set.Scenarios[0].Logic), "caller's set is left untouched")
	})

	s.Run("malformed logic is rejected", func() {
		set := sampleSet()
		set.Scenarios[0].Logic = json.RawMessage(`{"==": [1,`)
		err := s.repo.Save(ctx, set)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("each read parses afresh", func() {
		s.Require().NoError(s.repo.Save(ctx, sampleSet()))
		first := s.repo.Scenarios(ctx)
		first.Scenarios[0].Title = "mutated"

		second := s.repo.Scenarios(ctx)
		s.Equal("Bundesweit", second.Scenarios[0].Title)
	})

	s.Run("duplicate identifiers are rejected", func() {
		set := sampleSet()
		set.Scenarios[1].Identifier = "DE"
		err := s.repo.Save(ctx, set)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("write failure is returned", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := s.repo.Save(cancelled, sampleSet())
		s.Require().Error(err)
		s.True(errors.Is(err, context.Canceled))
	})

	s.Run("save bumps the revision", func() {
		before := s.repo.Revision()
		s.Require().NoError(s.repo.Save(ctx, sampleSet()))
		s.Equal(before+1, s.repo.Revision())
	})
}

// =============================================================================
// Selection
// =============================================================================

func (s *RepositorySuite) TestSelection() {
	ctx := context.Background()

	s.Run("defaults to none", func() {
		id, err := s.repo.SelectedScenarioID(ctx)
		s.Require().NoError(err)
		s.Empty(id)
	})

	s.Run("select and clear", func() {
		s.Require().NoError(s.repo.SelectScenario(ctx, "DE"))
		id, err := s.repo.SelectedScenarioID(ctx)
		s.Require().NoError(err)
		s.Equal("DE", id)

		s.Require().NoError(s.repo.SelectScenario(ctx, ""))
		id, err = s.repo.SelectedScenarioID(ctx)
		s.Require().NoError(err)
		s.Empty(id)
	})
}

func (s *RepositorySuite) TestScenarioSetHelpers() {
	set := sampleSet()

	sc, ok := set.Find("BW")
	s.True(ok)
	s.Equal("Baden-Württemberg", sc.Title)

	_, ok = set.Find("HH")
	s.False(ok)

	s.Len(set.Enabled(), 1)

	var none *ScenarioSet
	s.Nil(none.Enabled())
}
