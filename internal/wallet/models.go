package wallet

import (
	"time"

	"github.com/d4rken/cwa-app-android/internal/admission"
	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// PersonSelection picks whose certificates an evaluation covers. The only
// implementations are AllPersons and SelectedPerson; switch on them exhaustively.
type PersonSelection interface {
	// Key is the stable cache key of the selection.
	Key() string
	isPersonSelection()
}

// AllPersons is the union view over every certificate in the wallet.
type AllPersons struct{}

func (AllPersons) Key() string        { return "all" }
func (AllPersons) isPersonSelection() {}
func (AllPersons) String() string     { return "all persons" }

// SelectedPerson narrows evaluation to one holder.
type SelectedPerson struct {
	ID domain.PersonID
}

func (p SelectedPerson) Key() string      { return "person:" + string(p.ID) }
func (SelectedPerson) isPersonSelection() {}
func (p SelectedPerson) String() string   { return string(p.ID) }

// ParseSelection maps the external form ("all" or a person id) to a selection.
func ParseSelection(s string) (PersonSelection, error) {
	if s == "all" {
		return AllPersons{}, nil
	}
	id, err := domain.ParsePersonID(s)
	if err != nil {
		return nil, err
	}
	return SelectedPerson{ID: id}, nil
}

// Scenarios is the scenario input of one evaluation: the set and the
// identifier the user picked, if any.
type Scenarios struct {
	Set        *admission.ScenarioSet
	SelectedID string
}

type ScenarioStatus string

const (
	ScenarioNotApplicable ScenarioStatus = "not_applicable"
	ScenarioSatisfied     ScenarioStatus = "satisfied"
	ScenarioNotSatisfied  ScenarioStatus = "not_satisfied"
)

type RuleResult string

const (
	RulePassed RuleResult = "passed"
	RuleFailed RuleResult = "failed"
)

// WalletInfo is the evaluation result for one selection. It is replaced
// wholesale on every successful evaluation.
type WalletInfo struct {
	Selection              string                 `json:"selection"`
	RulesetVersion         string                 `json:"ruleset_version,omitempty"`
	AdmissibleCertificates []domain.CertificateID `json:"admissible_certificates"`
	Scenarios              []ScenarioOutcome      `json:"scenarios"`
	Rules                  []RuleOutput           `json:"rules"`
	Validity               Validity               `json:"validity"`
	EvaluatedAt            time.Time              `json:"evaluated_at"`
}

// ScenarioOutcome keeps applicability apart from truth: a scenario with no
// certificate of an accepted type is NotApplicable, never NotSatisfied.
type ScenarioOutcome struct {
	Identifier   string                 `json:"identifier"`
	Title        string                 `json:"title"`
	Status       ScenarioStatus         `json:"status"`
	Certificates []domain.CertificateID `json:"certificates,omitempty"`
}

type RuleOutput struct {
	RuleID string     `json:"rule_id"`
	Result RuleResult `json:"result"`
	Text   string     `json:"text,omitempty"`
}

// Validity is the window the result holds for. Zero bounds are open.
type Validity struct {
	From time.Time `json:"from,omitzero"`
	To   time.Time `json:"to,omitzero"`
}

// Contains reports whether t lies in [From, To).
func (v Validity) Contains(t time.Time) bool {
	if !v.From.IsZero() && t.Before(v.From) {
		return false
	}
	if !v.To.IsZero() && !t.Before(v.To) {
		return false
	}
	return true
}

func (v Validity) narrow(from, to time.Time) Validity {
	if !from.IsZero() && (v.From.IsZero() || from.After(v.From)) {
		v.From = from
	}
	if !to.IsZero() && (v.To.IsZero() || to.Before(v.To)) {
		v.To = to
	}
	return v
}
