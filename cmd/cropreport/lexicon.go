// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrolens/cropreport/internal/lexicon"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect and validate keyword tables",
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a lexicon file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read lexicon: %w", err)
		}
		if err := lexicon.Validate(args[0], data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		return nil
	},
}

var lexiconDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the lexicon in use",
	Long:  "Print the lexicon in use (the --lexicon file or the embedded default) in the selected output format.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := newNormalizer()
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, n.Lexicon())
	},
}

func init() {
	lexiconCmd.AddCommand(lexiconValidateCmd)
	lexiconCmd.AddCommand(lexiconDumpCmd)
	rootCmd.AddCommand(lexiconCmd)
}
