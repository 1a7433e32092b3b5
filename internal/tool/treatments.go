// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agrolens/cropreport/internal/report"
)

// MetadataRecoverTreatments describes the recover_treatments tool.
var MetadataRecoverTreatments = &mcp.Tool{
	Name: "recover_treatments",
	Description: "Extract an ordered list of treatment steps from a diagnosis report. " +
		"Numbered '1. **Title**' steps with 'English:' and regional-language lines are preferred; " +
		"otherwise treatment-keyword sentences are used, then fixed generic advice. " +
		"The result always has at least three steps and names the tier that produced it.",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Full report text. May be empty.",
			},
			"section": map[string]interface{}{
				"type":        "string",
				"description": "Optional body of the report's treatment section. Used instead of content when at least ten characters long.",
			},
		},
	},
}

// InputRecoverTreatments is the input for the RecoverTreatments tool.
type InputRecoverTreatments struct {
	Content string `json:"content"`
	Section string `json:"section"`
}

// OutputRecoverTreatments is the output for the RecoverTreatments tool.
type OutputRecoverTreatments struct {
	Steps      []report.TreatmentStep `json:"steps"`
	Tier       report.Tier            `json:"tier"`
	Backfilled int                    `json:"backfilled"`
}

// RecoverTreatments runs the treatment ladder. It never fails.
func (t *Tools) RecoverTreatments(_ context.Context, _ *mcp.CallToolRequest, input InputRecoverTreatments) (*mcp.CallToolResult, OutputRecoverTreatments, error) {
	rec := t.normalizer.RecoverTreatmentsWithMeta(input.Content, input.Section)
	return nil, OutputRecoverTreatments{
		Steps:      rec.Steps,
		Tier:       rec.Tier,
		Backfilled: rec.Backfilled,
	}, nil
}
