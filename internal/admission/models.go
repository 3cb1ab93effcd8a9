package admission

import (
	"encoding/json"

	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// ScenarioSet is the remotely supplied list of admission scenarios plus the
// label shown above the selection.
type ScenarioSet struct {
	LabelText string              `json:"labelText"`
	Scenarios []AdmissionScenario `json:"scenarios"`
}

// AdmissionScenario is one named admission policy. Logic is a rule expression
// evaluated per certificate of an accepted type.
type AdmissionScenario struct {
	Identifier       string                   `json:"identifier"`
	Title            string                   `json:"title"`
	Subtitle         string                   `json:"subtitle,omitempty"`
	Enabled          bool                     `json:"enabled"`
	CertificateTypes []domain.CertificateType `json:"certificateTypes,omitempty"`
	Logic            json.RawMessage          `json:"logic"`
}

// Find returns the scenario with the given identifier.
func (s *ScenarioSet) Find(identifier string) (AdmissionScenario, bool) {
	if s == nil {
		return AdmissionScenario{}, false
	}
	for _, sc := range s.Scenarios {
		if sc.Identifier == identifier {
			return sc, true
		}
	}
	return AdmissionScenario{}, false
}

// Enabled lists the scenarios that may currently be evaluated.
func (s *ScenarioSet) Enabled() []AdmissionScenario {
	if s == nil {
		return nil
	}
	var out []AdmissionScenario
	for _, sc := range s.Scenarios {
		if sc.Enabled {
			out = append(out, sc)
		}
	}
	return out
}
