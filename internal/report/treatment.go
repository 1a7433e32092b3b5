// SPDX-License-Identifier: Apache-2.0

package report

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agrolens/cropreport/internal/lexicon"
)

// MinTreatments is the smallest number of steps RecoverTreatments returns.
const MinTreatments = 3

const (
	// A treatment section shorter than this is ignored in favour of the
	// whole document.
	minSectionRunes = 10
	// Tier 2 keeps sentences longer than this...
	minSentenceRunes = 20
	// ...whose cleaned text is longer than this.
	minCleanRunes = 10
)

// Tier names the extraction strategy that produced a treatment list.
type Tier string

const (
	// TierMarkers: numbered, emphasized step titles ("1. **Title**").
	TierMarkers Tier = "markers"
	// TierKeywords: sentences containing treatment keywords.
	TierKeywords Tier = "keywords"
	// TierGeneric: the fixed generic steps.
	TierGeneric Tier = "generic"
	// TierBackstop: blank input, backstop steps only.
	TierBackstop Tier = "backstop"
)

var (
	ordinalPattern = regexp.MustCompile(`^\d+\.\s*\*\*`)
	titlePattern   = regexp.MustCompile(`^\d+\.\s*\*\*([^*]+)\*\*`)
	sentenceBreak  = regexp.MustCompile(`[.!?।]\s+`)
	markupPattern  = regexp.MustCompile(`[#*\[\]]`)
)

// Recovery is a treatment list together with how it was obtained.
type Recovery struct {
	Steps []TreatmentStep
	Tier  Tier
	// Backfilled counts backstop steps appended to reach MinTreatments.
	Backfilled int
}

type group struct {
	title    string
	keywords []string
}

// recoverer runs the treatment extraction ladder. Built once per lexicon.
type recoverer struct {
	primaryTag *regexp.Regexp
	localTag   *regexp.Regexp
	groups     []group
	generic    []TreatmentStep
	backstop   []TreatmentStep
}

func newRecoverer(t lexicon.Treatment) *recoverer {
	r := &recoverer{
		primaryTag: tagPattern(t.PrimaryTags),
		localTag:   tagPattern(t.LocalTags),
		generic:    steps(t.Generic),
		backstop:   steps(t.Backstop),
	}
	for _, g := range t.KeywordGroups {
		kws := make([]string, len(g.Keywords))
		for i, kw := range g.Keywords {
			kws[i] = strings.ToLower(kw)
		}
		r.groups = append(r.groups, group{title: g.Title, keywords: kws})
	}
	return r
}

// tagPattern matches a leading language tag such as "- English:" or
// "* **Hindi**:" and the markup around it.
func tagPattern(tags []string) *regexp.Regexp {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = regexp.QuoteMeta(tag)
	}
	return regexp.MustCompile(`(?i)^[-*•\s]*(?:` + strings.Join(quoted, "|") + `)\**\s*:\**\s*`)
}

func steps(in []lexicon.Step) []TreatmentStep {
	out := make([]TreatmentStep, len(in))
	for i, s := range in {
		out[i] = TreatmentStep{Title: s.Title, Primary: s.Text, LocalText: s.Local}
	}
	return out
}

func (r *recoverer) recover(document, section string) Recovery {
	text := section
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSectionRunes {
		text = document
	}

	var rec Recovery
	if !r.fromMarkers(text, &rec) && !r.fromKeywords(text, &rec) {
		if strings.TrimSpace(text) != "" {
			rec.Steps = append(rec.Steps, r.generic...)
			rec.Tier = TierGeneric
		} else {
			rec.Tier = TierBackstop
		}
	}

	for i := 0; len(rec.Steps) < MinTreatments && i < len(r.backstop); i++ {
		rec.Steps = append(rec.Steps, r.backstop[i])
		rec.Backfilled++
	}
	return rec
}

// fromMarkers parses "1. **Title**" steps followed by tagged language lines.
func (r *recoverer) fromMarkers(text string, rec *Recovery) bool {
	var cur *TreatmentStep
	commit := func() {
		if cur != nil && cur.Title != "" {
			rec.Steps = append(rec.Steps, *cur)
		}
	}

	for _, raw := range nonBlankLines(text) {
		line := strings.TrimSpace(raw)
		if ordinalPattern.MatchString(line) {
			commit()
			cur = &TreatmentStep{Title: stepTitle(line)}
			continue
		}
		if cur == nil {
			continue
		}
		if loc := r.primaryTag.FindStringIndex(line); loc != nil {
			cur.Primary = strings.TrimSpace(line[loc[1]:])
		} else if loc := r.localTag.FindStringIndex(line); loc != nil {
			cur.LocalText = strings.TrimSpace(line[loc[1]:])
		} else if cur.Primary == "" {
			cur.Primary = line
		}
	}
	commit()

	if len(rec.Steps) == 0 {
		return false
	}
	rec.Tier = TierMarkers
	return true
}

func stepTitle(line string) string {
	if m := titlePattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(strings.ReplaceAll(ordinalPattern.ReplaceAllString(line, ""), "**", ""))
}

// fromKeywords turns each keyword-bearing sentence into a step titled by
// its category.
func (r *recoverer) fromKeywords(text string, rec *Recovery) bool {
	for _, sentence := range sentenceBreak.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) <= minSentenceRunes {
			continue
		}
		title := r.category(sentence)
		if title == "" {
			continue
		}
		clean := strings.TrimSpace(markupPattern.ReplaceAllString(sentence, ""))
		if utf8.RuneCountInString(clean) <= minCleanRunes {
			continue
		}
		rec.Steps = append(rec.Steps, TreatmentStep{Title: title, Primary: clean})
	}

	if len(rec.Steps) == 0 {
		return false
	}
	rec.Tier = TierKeywords
	return true
}

// category returns the title of the first keyword group the sentence
// matches, or "" when it matches none.
func (r *recoverer) category(sentence string) string {
	lower := strings.ToLower(sentence)
	for _, g := range r.groups {
		if containsAny(lower, g.keywords) {
			return g.title
		}
	}
	return ""
}
