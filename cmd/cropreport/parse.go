// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/agrolens/cropreport/internal/report"
)

var treatmentSection string

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Normalize a diagnosis report",
	Long:  "Normalize a diagnosis report read from a file or stdin and print the structured or raw-fallback record.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var treatmentsCmd = &cobra.Command{
	Use:   "treatments [file|-]",
	Short: "Recover treatment steps from a report",
	Long: `Run only the treatment ladder: numbered steps, then keyword sentences, then
generic advice, padded to at least three steps.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTreatments,
}

func init() {
	treatmentsCmd.Flags().StringVar(&treatmentSection, "section", "", "title keyword of the treatment section to prefer over the whole document")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(treatmentsCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	n, err := newNormalizer()
	if err != nil {
		return err
	}

	normalized := n.Normalize(text)
	logger.Info().Str("kind", string(normalized.Kind)).Int("bytes", len(text)).Msg("report normalized")
	return writeOutput(cmd.OutOrStdout(), cfg.Output, normalized)
}

func runTreatments(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	n, err := newNormalizer()
	if err != nil {
		return err
	}

	var section string
	if treatmentSection != "" {
		if sections := report.Split(text); sections != nil {
			if title, ok := sections.Find(treatmentSection); ok {
				section, _ = sections.Body(title)
			}
		}
	}

	rec := n.RecoverTreatmentsWithMeta(text, section)
	return writeOutput(cmd.OutOrStdout(), cfg.Output, struct {
		Steps      []report.TreatmentStep `json:"steps" yaml:"steps"`
		Tier       report.Tier            `json:"tier" yaml:"tier"`
		Backfilled int                    `json:"backfilled" yaml:"backfilled"`
	}{rec.Steps, rec.Tier, rec.Backfilled})
}
