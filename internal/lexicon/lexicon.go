// SPDX-License-Identifier: Apache-2.0

// Package lexicon holds the keyword tables and fixed fallback text used by the
// report engine. Tables are data: they are decoded from YAML, validated
// against a CUE schema, and never mutated after loading.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed lexicon.yaml
var defaultYAML []byte

// Lexicon is the full resource table for one engine instance.
type Lexicon struct {
	Version   int       `yaml:"version" json:"version"`
	Sections  Sections  `yaml:"sections" json:"sections"`
	Labels    Labels    `yaml:"labels" json:"labels"`
	Treatment Treatment `yaml:"treatment" json:"treatment"`
	Raw       Raw       `yaml:"raw" json:"raw"`
}

// Sections names the title keyword of each canonical report section.
type Sections struct {
	Identification string `yaml:"identification" json:"identification"`
	Symptoms       string `yaml:"symptoms" json:"symptoms"`
	Diagnosis      string `yaml:"diagnosis" json:"diagnosis"`
	Treatment      string `yaml:"treatment" json:"treatment"`
	Notes          string `yaml:"notes" json:"notes"`
}

type Labels struct {
	Severity   Scale `yaml:"severity" json:"severity"`
	Confidence Scale `yaml:"confidence" json:"confidence"`
}

// Scale is an ordered list of levels, most alarming or most certain first.
// Field is the row field-name substring that marks a row as carrying this
// kind of label.
type Scale struct {
	Field   string  `yaml:"field" json:"field"`
	Default string  `yaml:"default" json:"default"`
	Levels  []Level `yaml:"levels" json:"levels"`
}

type Level struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

type Treatment struct {
	PrimaryTags   []string `yaml:"primary_tags" json:"primary_tags"`
	LocalTags     []string `yaml:"local_tags" json:"local_tags"`
	KeywordGroups []Group  `yaml:"keyword_groups" json:"keyword_groups"`
	Generic       []Step   `yaml:"generic" json:"generic"`
	Backstop      []Step   `yaml:"backstop" json:"backstop"`
}

// Group is a treatment category; a sentence is filed under the first group
// whose keywords it contains.
type Group struct {
	Title    string   `yaml:"title" json:"title"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Step is a fixed treatment step.
type Step struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
	Local string `yaml:"local,omitempty" json:"local,omitempty"`
}

// Raw holds the strings used when a report has no section headers.
type Raw struct {
	MentionKeyword  string   `yaml:"mention_keyword" json:"mention_keyword"`
	ExcerptKeywords []string `yaml:"excerpt_keywords" json:"excerpt_keywords"`
	Placeholder     string   `yaml:"placeholder" json:"placeholder"`
}

// Keywords returns every keyword across all groups, in group order.
func (t Treatment) Keywords() []string {
	var out []string
	for _, g := range t.KeywordGroups {
		out = append(out, g.Keywords...)
	}
	return out
}

// Parse validates data against the lexicon schema and decodes it.
// name is used in error messages only.
func Parse(name string, data []byte) (*Lexicon, error) {
	if err := Validate(name, data); err != nil {
		return nil, err
	}
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lexicon %q: %w", name, err)
	}
	return &lx, nil
}

// Load reads and parses a lexicon file.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(path, data)
}

var loadDefault = sync.OnceValue(func() *Lexicon {
	lx, err := Parse("lexicon.yaml", defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lx
})

// Default returns the embedded lexicon. It is decoded once per process and
// shared; callers must not modify it.
func Default() *Lexicon {
	return loadDefault()
}

// DefaultYAML returns a copy of the embedded lexicon source.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}
