// SPDX-License-Identifier: Apache-2.0

package lexicon_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolens/cropreport/internal/lexicon"
)

func TestDefault(t *testing.T) {
	lx := lexicon.Default()
	require.NotNil(t, lx)

	assert.Equal(t, 1, lx.Version)
	assert.Equal(t, "IDENTIFICATION", lx.Sections.Identification)
	assert.Equal(t, "ADDITIONAL", lx.Sections.Notes)
	assert.Equal(t, "severe", lx.Labels.Severity.Levels[0].Label)
	assert.Equal(t, "mild", lx.Labels.Severity.Default)
	assert.Equal(t, "low", lx.Labels.Confidence.Default)
	assert.Len(t, lx.Treatment.Generic, 4)
	assert.Len(t, lx.Treatment.Backstop, 3)
	assert.Equal(t, "Monitor Progress", lx.Treatment.Backstop[0].Title)

	// Same instance on every call.
	assert.Same(t, lx, lexicon.Default())
}

func TestDefault_SeverityCoversFiveScripts(t *testing.T) {
	severe := lexicon.Default().Labels.Severity.Levels[0].Keywords
	assert.GreaterOrEqual(t, len(severe), 5, "severe needs English plus at least four more scripts")
	assert.Contains(t, severe, "severe")
	assert.Contains(t, severe, "गंभीर")
	assert.Contains(t, severe, "తీవ్రమైన")
}

func TestTreatment_Keywords(t *testing.T) {
	tr := lexicon.Treatment{KeywordGroups: []lexicon.Group{
		{Title: "A", Keywords: []string{"a1", "a2"}},
		{Title: "B", Keywords: []string{"b1"}},
	}}
	assert.Equal(t, []string{"a1", "a2", "b1"}, tr.Keywords())
}

func TestParse_RoundTripsDefault(t *testing.T) {
	lx, err := lexicon.Parse("copy.yaml", lexicon.DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, lexicon.Default(), lx)
}

func TestValidate(t *testing.T) {
	base := string(lexicon.DefaultYAML())

	tests := []struct {
		name        string
		doc         string
		wantErr     bool
		errContains string
	}{
		{
			name: "embedded lexicon is valid",
			doc:  base,
		},
		{
			name:        "too few backstop steps",
			doc:         strings.Replace(base, "    - title: Preventive Measures\n      text: Implement crop rotation and use resistant varieties in future plantings.\n", "", 1),
			wantErr:     true,
			errContains: "does not match schema",
		},
		{
			name:        "unknown top-level field",
			doc:         base + "\nextra: true\n",
			wantErr:     true,
			errContains: "does not match schema",
		},
		{
			name:        "empty section keyword",
			doc:         strings.Replace(base, "notes: ADDITIONAL", `notes: ""`, 1),
			wantErr:     true,
			errContains: "does not match schema",
		},
		{
			name:    "malformed yaml",
			doc:     "version: [1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lexicon.Validate("test.yaml", []byte(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := strings.Replace(string(lexicon.DefaultYAML()), "placeholder: Treatment recommendations are being processed...", "placeholder: Pending", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	lx, err := lexicon.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Pending", lx.Raw.Placeholder)

	_, err = lexicon.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read lexicon")
}
