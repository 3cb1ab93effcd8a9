package wallet

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/d4rken/cwa-app-android/internal/admission"
	"github.com/d4rken/cwa-app-android/internal/ccl/ruleset"
	"github.com/d4rken/cwa-app-android/internal/certificates"
	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// predicate evaluates one logic expression against one data document.
type predicate func(expr json.RawMessage, data []byte) (bool, error)

type document struct {
	Payload  json.RawMessage `json:"payload"`
	Meta     documentMeta    `json:"meta"`
	External documentExt     `json:"external"`
}

type documentMeta struct {
	ID        domain.CertificateID   `json:"id"`
	Person    domain.PersonID        `json:"person"`
	Type      domain.CertificateType `json:"type"`
	IssuedAt  time.Time              `json:"issuedAt"`
	ExpiresAt time.Time              `json:"expiresAt,omitzero"`
}

type documentExt struct {
	Now time.Time `json:"now"`
}

// evaluation is a single pure pass over one selection's certificates.
type evaluation struct {
	now      time.Time
	language string
	test     predicate
	docs     map[domain.CertificateID][]byte
}

func (ev *evaluation) document(c certificates.Certificate) ([]byte, error) {
	if ev.docs == nil {
		ev.docs = make(map[domain.CertificateID][]byte)
	}
	if doc, ok := ev.docs[c.ID]; ok {
		return doc, nil
	}
	doc, err := json.Marshal(document{
		Payload: c.Payload,
		Meta: documentMeta{
			ID:        c.ID,
			Person:    c.Person,
			Type:      c.Type,
			IssuedAt:  c.IssuedAt,
			ExpiresAt: c.ExpiresAt,
		},
		External: documentExt{Now: ev.now},
	})
	if err != nil {
		return nil, fmt.Errorf("certificate %s: %w", c.ID, err)
	}
	ev.docs[c.ID] = doc
	return doc, nil
}

func (ev *evaluation) run(sel PersonSelection, certs certificates.Set, rs *ruleset.RuleConfiguration, sc Scenarios) (*WalletInfo, error) {
	info := &WalletInfo{
		Selection:   sel.Key(),
		EvaluatedAt: ev.now,
	}
	if rs != nil {
		info.RulesetVersion = rs.Version
	}

	for _, scenario := range scenariosInScope(sc) {
		outcome, err := ev.scenario(scenario, certs)
		if err != nil {
			return nil, err
		}
		info.Scenarios = append(info.Scenarios, outcome)
	}

	failed := make(map[domain.CertificateID]bool)
	if rs != nil {
		for _, rule := range rs.Rules {
			matching := certs.OfTypes(rule.CertificateTypes)
			if len(matching) == 0 {
				continue
			}
			result := RuleFailed
			for _, c := range matching {
				doc, err := ev.document(c)
				if err != nil {
					return nil, err
				}
				ok, err := ev.test(rule.Logic, doc)
				if err != nil {
					return nil, fmt.Errorf("rule %s on certificate %s: %w", rule.ID, c.ID, err)
				}
				if ok {
					result = RulePassed
				} else {
					failed[c.ID] = true
				}
			}
			info.Rules = append(info.Rules, RuleOutput{
				RuleID: rule.ID,
				Result: result,
				Text:   rs.DescriptionFor(rule.ID, ev.language),
			})
			info.Validity = info.Validity.narrow(rule.ValidFrom, rule.ValidTo)
		}
		for _, c := range certs.All() {
			if !failed[c.ID] {
				info.AdmissibleCertificates = append(info.AdmissibleCertificates, c.ID)
			}
		}
	}
	return info, nil
}

func (ev *evaluation) scenario(s admission.AdmissionScenario, certs certificates.Set) (ScenarioOutcome, error) {
	out := ScenarioOutcome{Identifier: s.Identifier, Title: s.Title, Status: ScenarioNotApplicable}
	matching := certs.OfTypes(s.CertificateTypes)
	if len(matching) == 0 {
		return out, nil
	}
	out.Status = ScenarioNotSatisfied
	for _, c := range matching {
		doc, err := ev.document(c)
		if err != nil {
			return out, err
		}
		ok, err := ev.test(s.Logic, doc)
		if err != nil {
			return out, fmt.Errorf("scenario %s on certificate %s: %w", s.Identifier, c.ID, err)
		}
		if ok {
			out.Status = ScenarioSatisfied
			out.Certificates = append(out.Certificates, c.ID)
		}
	}
	return out, nil
}

// scenariosInScope is the selected scenario when it exists and is enabled,
// otherwise every enabled scenario.
func scenariosInScope(sc Scenarios) []admission.AdmissionScenario {
	if sc.Set == nil {
		return nil
	}
	if sc.SelectedID != "" {
		if s, ok := sc.Set.Find(sc.SelectedID); ok && s.Enabled {
			return []admission.AdmissionScenario{s}
		}
	}
	return sc.Set.Enabled()
}

// scope narrows the wallet to the certificates a selection covers.
func scope(sel PersonSelection, certs certificates.Set) certificates.Set {
	switch s := sel.(type) {
	case AllPersons:
		return certs
	case SelectedPerson:
		return certs.ForPerson(s.ID)
	default:
		panic(fmt.Sprintf("wallet: unknown person selection %T", sel))
	}
}
