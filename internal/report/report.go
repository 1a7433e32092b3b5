// SPDX-License-Identifier: Apache-2.0

package report

// Kind discriminates a NormalizedReport.
type Kind string

const (
	KindStructured Kind = "structured"
	KindRaw        Kind = "raw"
)

// Label is a ranked classification of a severity or confidence phrase.
type Label string

const (
	SeveritySevere   Label = "severe"
	SeverityModerate Label = "moderate"
	SeverityMild     Label = "mild"

	ConfidenceHigh   Label = "high"
	ConfidenceMedium Label = "medium"
	ConfidenceLow    Label = "low"
)

// Row is one field of a pseudo-table: a field name with its value in the
// primary language and in the report's local language.
type Row struct {
	Field   string `json:"field" yaml:"field"`
	Primary string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Local   string `json:"local,omitempty" yaml:"local,omitempty"`
	// Label is set on severity rows of the symptoms section and confidence
	// rows of the diagnosis section.
	Label Label `json:"label,omitempty" yaml:"label,omitempty"`
}

// Section is a canonical report section located by title keyword.
type Section struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
	Rows  []Row  `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// TreatmentStep is one displayable treatment recommendation. Display order is
// the slice order.
type TreatmentStep struct {
	Title     string `json:"title" yaml:"title"`
	Primary   string `json:"primary_text,omitempty" yaml:"primary_text,omitempty"`
	LocalText string `json:"local_text,omitempty" yaml:"local_text,omitempty"`
}

// Structured is the result for a report that has section headers.
type Structured struct {
	Identification  *Section        `json:"identification,omitempty" yaml:"identification,omitempty"`
	Symptoms        *Section        `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Diagnosis       *Section        `json:"diagnosis,omitempty" yaml:"diagnosis,omitempty"`
	Treatments      []TreatmentStep `json:"treatments" yaml:"treatments"`
	Notes           *Section        `json:"notes,omitempty" yaml:"notes,omitempty"`
	TreatmentTier   Tier            `json:"treatment_tier" yaml:"treatment_tier"`
	Backfilled      int             `json:"backfilled,omitempty" yaml:"backfilled,omitempty"`
	Titles          []string        `json:"titles" yaml:"titles"`
	DuplicateTitles []string        `json:"duplicate_titles,omitempty" yaml:"duplicate_titles,omitempty"`
}

// RawFallback is the result for a report with no section headers.
type RawFallback struct {
	Text string `json:"text" yaml:"text"`
	// MentionsTreatment tells the caller whether to also show TreatmentExcerpt.
	MentionsTreatment bool   `json:"mentions_treatment" yaml:"mentions_treatment"`
	TreatmentExcerpt  string `json:"treatment_excerpt,omitempty" yaml:"treatment_excerpt,omitempty"`
}

// NormalizedReport holds exactly one of Structured or Raw, selected by Kind.
type NormalizedReport struct {
	Kind       Kind         `json:"kind" yaml:"kind"`
	Structured *Structured  `json:"structured,omitempty" yaml:"structured,omitempty"`
	Raw        *RawFallback `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// IsStructured reports whether the report was split into sections.
func (r NormalizedReport) IsStructured() bool {
	return r.Kind == KindStructured && r.Structured != nil
}
