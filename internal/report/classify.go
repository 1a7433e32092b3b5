// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"

	"github.com/agrolens/cropreport/internal/lexicon"
)

// rule maps a set of trigger keywords to a label.
type rule struct {
	keywords []string
	label    Label
}

// scale is an ordered rule list. Rules are evaluated in order; the first
// match wins and unmatched text falls to fallback.
type scale struct {
	field    string
	rules    []rule
	fallback Label
}

func newScale(s lexicon.Scale) scale {
	sc := scale{
		field:    strings.ToLower(s.Field),
		fallback: Label(s.Default),
	}
	for _, lvl := range s.Levels {
		kws := make([]string, len(lvl.Keywords))
		for i, kw := range lvl.Keywords {
			kws[i] = strings.ToLower(kw)
		}
		sc.rules = append(sc.rules, rule{keywords: kws, label: Label(lvl.Label)})
	}
	return sc
}

func (sc scale) classify(text string) Label {
	lower := strings.ToLower(text)
	for _, r := range sc.rules {
		if containsAny(lower, r.keywords) {
			return r.label
		}
	}
	return sc.fallback
}

// labels reports whether a row with this field name carries a label.
func (sc scale) labels(field string) bool {
	return sc.field != "" && strings.Contains(strings.ToLower(field), sc.field)
}

// Classifier maps free-text severity and confidence phrases to labels.
// It is immutable and safe for concurrent use.
type Classifier struct {
	severity   scale
	confidence scale
}

// NewClassifier builds a Classifier from the lexicon's label scales.
func NewClassifier(lx *lexicon.Lexicon) *Classifier {
	return &Classifier{
		severity:   newScale(lx.Labels.Severity),
		confidence: newScale(lx.Labels.Confidence),
	}
}

// Severity classifies text as severe, moderate, or mild. Severe keywords
// outrank moderate ones when both are present.
func (c *Classifier) Severity(text string) Label {
	return c.severity.classify(text)
}

// Confidence classifies text as high, medium, or low.
func (c *Classifier) Confidence(text string) Label {
	return c.confidence.classify(text)
}

// ClassifySeverity classifies text with the default lexicon.
func ClassifySeverity(text string) Label {
	return Default().classifier.Severity(text)
}

// ClassifyConfidence classifies text with the default lexicon.
func ClassifyConfidence(text string) Label {
	return Default().classifier.Confidence(text)
}

// containsAny reports whether lower contains any of the lowercase keywords.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
