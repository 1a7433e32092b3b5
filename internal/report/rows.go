// SPDX-License-Identifier: Apache-2.0

package report

import (
	"strings"
)

// ExtractRows reads pipe-delimited pseudo-table lines from a section body.
// cell[1] is the field name, cell[2] the primary-language value and cell[3]
// the local-language value. Lines with fewer than four cells, separator rows
// and the caption row directly above a separator are skipped. A repeated
// field name keeps its first position and takes the later values.
func ExtractRows(body string) []Row {
	lines := nonBlankLines(body)

	var rows []Row
	index := make(map[string]int)
	for i, line := range lines {
		if !strings.Contains(line, "|") || isSeparatorRow(line) {
			continue
		}
		if i+1 < len(lines) && isSeparatorRow(lines[i+1]) {
			continue
		}

		cells := strings.Split(line, "|")
		if len(cells) < 4 {
			continue
		}
		row := Row{
			Field:   strings.TrimSpace(cells[1]),
			Primary: strings.TrimSpace(cells[2]),
			Local:   strings.TrimSpace(cells[3]),
		}
		if row.Field == "" {
			continue
		}

		if at, ok := index[row.Field]; ok {
			rows[at] = row
			continue
		}
		index[row.Field] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

// isSeparatorRow reports whether line is a markdown table separator such as
// "|:---|---:|". Every non-empty cell must consist of dashes and colons only,
// with at least one dash.
func isSeparatorRow(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.Contains(s, "|") || !strings.Contains(s, "-") {
		return false
	}
	found := 0
	for _, cell := range strings.Split(s, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if strings.Trim(cell, ":-") != "" || !strings.Contains(cell, "-") {
			return false
		}
		found++
	}
	return found > 0
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimRight(line, "\r"))
		}
	}
	return out
}
