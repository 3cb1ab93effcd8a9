package ruleset

import (
	"encoding/json"
	"time"

	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// RuleConfiguration is one complete, versioned rule snapshot. It is replaced
// wholesale and never edited in place.
type RuleConfiguration struct {
	Version      string        `json:"version"`
	Rules        []Rule        `json:"rules"`
	Descriptions []Description `json:"descriptions"`

	fingerprint uint64
}

// Rule is evaluated against every certificate of an accepted type.
type Rule struct {
	ID               string                   `json:"id"`
	CertificateTypes []domain.CertificateType `json:"certificateTypes,omitempty"`
	Logic            json.RawMessage          `json:"logic"`
	// ValidFrom and ValidTo bound the window in which a passing rule holds.
	// Zero values leave that side open.
	ValidFrom time.Time `json:"validFrom,omitzero"`
	ValidTo   time.Time `json:"validTo,omitzero"`
}

// Description is the human readable text for a rule in one language.
type Description struct {
	RuleID string `json:"ruleId"`
	Lang   string `json:"lang"`
	Text   string `json:"text"`
}

// Fingerprint identifies the exact payload this configuration was parsed from.
func (c *RuleConfiguration) Fingerprint() uint64 {
	if c == nil {
		return 0
	}
	return c.fingerprint
}

// DescriptionFor picks the text for ruleID in lang, falling back to English
// and then to whatever language is present.
func (c *RuleConfiguration) DescriptionFor(ruleID, lang string) string {
	if c == nil {
		return ""
	}
	var english, first string
	for _, d := range c.Descriptions {
		if d.RuleID != ruleID {
			continue
		}
		if d.Lang == lang {
			return d.Text
		}
		if d.Lang == "en" && english == "" {
			english = d.Text
		}
		if first == "" {
			first = d.Text
		}
	}
	if english != "" {
		return english
	}
	return first
}
