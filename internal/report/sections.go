// SPDX-License-Identifier: Apache-2.0

package report

import (
	"regexp"
	"strings"
)

// headerPattern matches a "## Title" header marker. The title must start with
// a non-space character and runs to the end of the line.
var headerPattern = regexp.MustCompile(`##[ \t]+(\S[^\r\n]*)`)

// Sections is an ordered mapping of section title to section body.
// A repeated title keeps its first position and takes the later body.
type Sections struct {
	titles     []string
	bodies     map[string]string
	duplicates []string
}

// Split segments text into sections on "## Title" header markers. Text before
// the first header is dropped. It returns nil when text has no header at all,
// which means the document is unstructured.
func Split(text string) *Sections {
	matches := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	s := &Sections{bodies: make(map[string]string, len(matches))}
	for i, m := range matches {
		title := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i < len(matches)-1 {
			end = matches[i+1][0]
		}
		s.set(title, strings.TrimSpace(text[m[1]:end]))
	}
	return s
}

func (s *Sections) set(title, body string) {
	if _, ok := s.bodies[title]; ok {
		s.duplicates = append(s.duplicates, title)
	} else {
		s.titles = append(s.titles, title)
	}
	s.bodies[title] = body
}

// Len returns the number of distinct titles.
func (s *Sections) Len() int {
	return len(s.titles)
}

// Titles returns the distinct titles in encounter order.
func (s *Sections) Titles() []string {
	return append([]string(nil), s.titles...)
}

// Body returns the body recorded for title.
func (s *Sections) Body(title string) (string, bool) {
	body, ok := s.bodies[title]
	return body, ok
}

// Duplicates returns titles that appeared more than once, once per repeat.
func (s *Sections) Duplicates() []string {
	return append([]string(nil), s.duplicates...)
}

// Find returns the first title, in encounter order, that contains keyword
// case-insensitively.
func (s *Sections) Find(keyword string) (string, bool) {
	kw := strings.ToUpper(keyword)
	for _, title := range s.titles {
		if strings.Contains(strings.ToUpper(title), kw) {
			return title, true
		}
	}
	return "", false
}
