// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrolens/cropreport/internal/report"
)

func TestNormalizeCropReport(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	tools := NewTools(nil, zerolog.Nop())

	tests := []struct {
		name           string
		input          InputNormalizeCropReport
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputNormalizeCropReport)
	}{
		{
			name:        "empty content returns error",
			input:       InputNormalizeCropReport{Content: ""},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name: "structured report produces sections and treatments",
			input: InputNormalizeCropReport{
				Content:  "## IDENTIFICATION\n| Feature | Wheat | गेहूं |\n## TREATMENT\n1. **Remove leaves** \n- English: cut affected leaves\n- Hindi: पत्तियां काटें",
				SourceID: "wheat-001",
			},
			validateOutput: func(t *testing.T, output OutputNormalizeCropReport) {
				assert.Equal(t, "wheat-001", output.SourceID)
				require.True(t, output.Report.IsStructured())
				s := output.Report.Structured
				require.NotNil(t, s.Identification)
				assert.Equal(t, "Feature", s.Identification.Rows[0].Field)
				require.GreaterOrEqual(t, len(s.Treatments), report.MinTreatments)
				assert.Equal(t, "Remove leaves", s.Treatments[0].Title)
			},
		},
		{
			name: "unstructured text returns raw fallback",
			input: InputNormalizeCropReport{
				Content: "Treatment: spray neem oil on the leaves every evening.",
			},
			validateOutput: func(t *testing.T, output OutputNormalizeCropReport) {
				assert.Equal(t, "unknown", output.SourceID)
				assert.Equal(t, report.KindRaw, output.Report.Kind)
				require.NotNil(t, output.Report.Raw)
				assert.True(t, output.Report.Raw.MentionsTreatment)
				assert.NotEmpty(t, output.Report.Raw.TreatmentExcerpt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := tools.NormalizeCropReport(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestRecoverTreatments(t *testing.T) {
	tools := NewTools(nil, zerolog.Nop())

	_, output, err := tools.RecoverTreatments(context.Background(), &mcp.CallToolRequest{}, InputRecoverTreatments{})
	require.NoError(t, err)
	assert.Equal(t, report.TierBackstop, output.Tier)
	assert.Equal(t, 3, output.Backfilled)
	assert.Len(t, output.Steps, 3)

	_, output, err = tools.RecoverTreatments(context.Background(), &mcp.CallToolRequest{}, InputRecoverTreatments{
		Content: "ignored because the section is long enough",
		Section: "1. **Remove leaves**\n2. **Burn debris**\n3. **Spray copper**",
	})
	require.NoError(t, err)
	assert.Equal(t, report.TierMarkers, output.Tier)
	assert.Equal(t, 0, output.Backfilled)
	assert.Equal(t, "Burn debris", output.Steps[1].Title)
}

// ---------------------------------------------------------------------------
// over an MCP session
// ---------------------------------------------------------------------------

var testImpl = &mcp.Implementation{Name: "cropreport-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testImpl, nil)
	NewTools(nil, zerolog.Nop()).Register(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	return tc.Text, result.IsError
}

func TestMCP_ListTools(t *testing.T) {
	session := mcpSession(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"normalize_crop_report", "recover_treatments"}, names)
}

func TestMCP_NormalizeCropReport(t *testing.T) {
	session := mcpSession(t)

	text, isErr := callTool(t, session, "normalize_crop_report", map[string]any{
		"content":   "## DIAGNOSIS\n| Confidence | Medium | मध्यम |",
		"source_id": "field-7",
	})
	require.False(t, isErr, text)

	var out struct {
		SourceID string `json:"source_id"`
		Report   struct {
			Kind       string `json:"kind"`
			Structured struct {
				Diagnosis struct {
					Rows []struct {
						Field string `json:"field"`
						Label string `json:"label"`
					} `json:"rows"`
				} `json:"diagnosis"`
				Treatments []json.RawMessage `json:"treatments"`
			} `json:"structured"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, "field-7", out.SourceID)
	assert.Equal(t, "structured", out.Report.Kind)
	require.Len(t, out.Report.Structured.Diagnosis.Rows, 1)
	assert.Equal(t, "medium", out.Report.Structured.Diagnosis.Rows[0].Label)
	assert.Len(t, out.Report.Structured.Treatments, 4)
}

func TestMCP_NormalizeCropReport_EmptyContent(t *testing.T) {
	session := mcpSession(t)

	text, isErr := callTool(t, session, "normalize_crop_report", map[string]any{"content": ""})
	assert.True(t, isErr)
	assert.Contains(t, text, "content is required")
}
