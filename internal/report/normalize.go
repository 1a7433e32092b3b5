// SPDX-License-Identifier: Apache-2.0

// Package report turns a free-form crop diagnosis report into a typed record.
// Every entry point is total: malformed input degrades to a lower-confidence
// result instead of an error.
package report

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agrolens/cropreport/internal/lexicon"
)

// Normalizer composes the section splitter, row extractor, label classifier
// and treatment recoverer. It holds no mutable state and may be shared
// between goroutines.
type Normalizer struct {
	lex        *lexicon.Lexicon
	classifier *Classifier
	recoverer  *recoverer
	logger     zerolog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLexicon replaces the embedded lexicon.
func WithLexicon(lx *lexicon.Lexicon) Option {
	return func(n *Normalizer) {
		if lx != nil {
			n.lex = lx
		}
	}
}

// WithLogger sets the logger used for debug tracing. The default discards.
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		lex:    lexicon.Default(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.classifier = NewClassifier(n.lex)
	n.recoverer = newRecoverer(n.lex.Treatment)
	return n
}

var defaultNormalizer = sync.OnceValue(func() *Normalizer { return New() })

// Default returns a shared Normalizer over the embedded lexicon.
func Default() *Normalizer {
	return defaultNormalizer()
}

// Normalize parses text with the default Normalizer.
func Normalize(text string) NormalizedReport {
	return Default().Normalize(text)
}

// RecoverTreatments runs the treatment ladder with the default Normalizer.
func RecoverTreatments(document, section string) []TreatmentStep {
	return Default().RecoverTreatments(document, section)
}

// Lexicon returns the tables this Normalizer was built from.
func (n *Normalizer) Lexicon() *lexicon.Lexicon {
	return n.lex
}

// Classifier returns the label classifier.
func (n *Normalizer) Classifier() *Classifier {
	return n.classifier
}

// RecoverTreatments returns at least MinTreatments steps for any input.
// section is the body of the report's treatment section, or "" when there is
// none; a section shorter than ten characters is ignored and document is used.
func (n *Normalizer) RecoverTreatments(document, section string) []TreatmentStep {
	return n.RecoverTreatmentsWithMeta(document, section).Steps
}

// RecoverTreatmentsWithMeta is RecoverTreatments plus the tier that produced
// the steps and the number of backstop steps appended.
func (n *Normalizer) RecoverTreatmentsWithMeta(document, section string) Recovery {
	rec := n.recoverer.recover(document, section)
	n.logger.Debug().
		Str("tier", string(rec.Tier)).
		Int("steps", len(rec.Steps)).
		Int("backfilled", rec.Backfilled).
		Msg("recovered treatments")
	return rec
}

// Normalize splits text into canonical sections. A text without section
// headers yields a RawFallback.
func (n *Normalizer) Normalize(text string) NormalizedReport {
	sections := Split(text)
	if sections == nil {
		n.logger.Debug().Msg("no section headers, using raw fallback")
		return NormalizedReport{Kind: KindRaw, Raw: n.rawFallback(text)}
	}

	titles := sections.Titles()
	n.logger.Debug().Strs("sections", titles).Msg("parsed sections")
	dups := sections.Duplicates()
	if len(dups) > 0 {
		n.logger.Warn().Strs("titles", dups).Msg("duplicate section titles, later bodies kept")
	}

	keys := n.lex.Sections
	out := &Structured{
		Identification:  n.section(sections, keys.Identification, nil),
		Symptoms:        n.section(sections, keys.Symptoms, &n.classifier.severity),
		Diagnosis:       n.section(sections, keys.Diagnosis, &n.classifier.confidence),
		Notes:           n.section(sections, keys.Notes, nil),
		Titles:          titles,
		DuplicateTitles: dups,
	}

	var treatmentBody string
	if title, ok := sections.Find(keys.Treatment); ok {
		treatmentBody, _ = sections.Body(title)
	}
	rec := n.RecoverTreatmentsWithMeta(text, treatmentBody)
	out.Treatments = rec.Steps
	out.TreatmentTier = rec.Tier
	out.Backfilled = rec.Backfilled

	return NormalizedReport{Kind: KindStructured, Structured: out}
}

// section locates the first section whose title contains keyword and
// extracts its rows. Rows whose field name marks them for sc get a label.
func (n *Normalizer) section(sections *Sections, keyword string, sc *scale) *Section {
	title, ok := sections.Find(keyword)
	if !ok {
		return nil
	}
	body, _ := sections.Body(title)
	rows := ExtractRows(body)
	if sc != nil {
		for i := range rows {
			if sc.labels(rows[i].Field) {
				rows[i].Label = sc.classify(rows[i].Primary)
			}
		}
	}
	return &Section{Title: title, Body: body, Rows: rows}
}

func (n *Normalizer) rawFallback(text string) *RawFallback {
	raw := &RawFallback{
		Text:              text,
		MentionsTreatment: strings.Contains(strings.ToLower(text), strings.ToLower(n.lex.Raw.MentionKeyword)),
	}
	if !raw.MentionsTreatment {
		return raw
	}

	raw.TreatmentExcerpt = n.lex.Raw.Placeholder
	keywords := make([]string, len(n.lex.Raw.ExcerptKeywords))
	for i, kw := range n.lex.Raw.ExcerptKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	for _, chunk := range strings.Split(text, "##") {
		if containsAny(strings.ToLower(chunk), keywords) {
			raw.TreatmentExcerpt = strings.TrimSpace(chunk)
			break
		}
	}
	return raw
}
