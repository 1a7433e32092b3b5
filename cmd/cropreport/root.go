// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agrolens/cropreport/internal/config"
	"github.com/agrolens/cropreport/internal/lexicon"
	"github.com/agrolens/cropreport/internal/observability"
	"github.com/agrolens/cropreport/internal/report"
)

const serviceName = "cropreport"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile     string
	lexiconPath string
	outputFmt   string
	logLevel    string
	logFormat   string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cropreport",
	Short: "Normalize generated crop-health diagnosis reports",
	Long: `cropreport turns the free-form diagnosis report produced by an upstream model
into a typed record: canonical sections, bilingual field rows, severity and
confidence labels, and a list of at least three treatment steps.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("lexicon") {
			loaded.LexiconPath = lexiconPath
		}
		if cmd.Flags().Changed("output") {
			loaded.Output = outputFmt
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			loaded.Log.Format = logFormat
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logger = observability.NewLogger(observability.LogConfig{
			Level:       cfg.Log.Level,
			Format:      cfg.Log.Format,
			ServiceName: serviceName,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "", "lexicon file overriding the embedded keyword tables")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format: json or console")
}

// newNormalizer builds a Normalizer from the loaded configuration.
func newNormalizer() (*report.Normalizer, error) {
	opts := []report.Option{report.WithLogger(logger)}
	if cfg.LexiconPath != "" {
		lx, err := lexicon.Load(cfg.LexiconPath)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", cfg.LexiconPath).Int("version", lx.Version).Msg("lexicon loaded")
		opts = append(opts, report.WithLexicon(lx))
	}
	return report.New(opts...), nil
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	return string(data), nil
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
}
