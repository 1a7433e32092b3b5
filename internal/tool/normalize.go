// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/agrolens/cropreport/internal/report"
)

// MetadataNormalizeCropReport describes the normalize_crop_report tool.
var MetadataNormalizeCropReport = &mcp.Tool{
	Name: "normalize_crop_report",
	Description: "Normalize a generated crop-health diagnosis report into a typed record. " +
		"Reports with '## Title' section headers are split into identification, symptoms, " +
		"diagnosis, treatment and additional-notes sections; pipe-delimited rows become " +
		"field/English/local-language triples, severity and confidence rows are labeled, and " +
		"treatment steps are recovered (always at least three). Reports without headers are " +
		"returned as raw text with a treatment excerpt when one is mentioned.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw text of the diagnosis report",
			},
			"source_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the report (file name, request ID, etc.) echoed back in the output.",
			},
		},
	},
}

// InputNormalizeCropReport is the input for the NormalizeCropReport tool.
type InputNormalizeCropReport struct {
	Content  string `json:"content"`
	SourceID string `json:"source_id"`
}

// OutputNormalizeCropReport is the output for the NormalizeCropReport tool.
type OutputNormalizeCropReport struct {
	SourceID string                  `json:"source_id"`
	Report   report.NormalizedReport `json:"report"`
}

// Tools binds the MCP tool handlers to one Normalizer.
type Tools struct {
	normalizer *report.Normalizer
	logger     zerolog.Logger
}

// NewTools creates the tool set. A nil normalizer uses report.Default().
func NewTools(n *report.Normalizer, logger zerolog.Logger) *Tools {
	if n == nil {
		n = report.Default()
	}
	return &Tools{normalizer: n, logger: logger}
}

// Register adds every tool to srv.
func (t *Tools) Register(srv *mcp.Server) {
	mcp.AddTool(srv, MetadataNormalizeCropReport, t.NormalizeCropReport)
	mcp.AddTool(srv, MetadataRecoverTreatments, t.RecoverTreatments)
}

// NormalizeCropReport runs the report normalizer over the provided text.
func (t *Tools) NormalizeCropReport(_ context.Context, _ *mcp.CallToolRequest, input InputNormalizeCropReport) (*mcp.CallToolResult, OutputNormalizeCropReport, error) {
	if input.Content == "" {
		return nil, OutputNormalizeCropReport{}, fmt.Errorf("content is required")
	}

	sourceID := input.SourceID
	if sourceID == "" {
		sourceID = "unknown"
	}

	normalized := t.normalizer.Normalize(input.Content)
	t.logger.Info().
		Str("tool", MetadataNormalizeCropReport.Name).
		Str("source_id", sourceID).
		Str("kind", string(normalized.Kind)).
		Msg("report normalized")

	return nil, OutputNormalizeCropReport{
		SourceID: sourceID,
		Report:   normalized,
	}, nil
}
