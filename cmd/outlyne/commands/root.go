// Package commands implements the CLI commands for outlyne.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/outlyne/internal/logger"
	"github.com/jmylchreest/outlyne/pkg/outline"
)

// defaultInput is read when no input file is given.
const defaultInput = "document.html"

// NewRootCommand builds the command tree. Each tree has its own viper
// instance, so trees built in tests do not share state.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "outlyne [input_file]",
		Short: "Extract the numbered section outline of an HTML document",
		Long: `Outlyne recovers the numbered section outline ("1", "1.1", "1.1.1", ...)
of a technical document converted to HTML by an office converter.

Tables, images, scripts, figure/table captions and long prose paragraphs
are removed first; the remaining blocks are matched against a dotted
numeral heading grammar, deduplicated and bounded by depth.

Examples:
  # Print the level 1-2 outline and write report_outline.{txt,md,json}
  outlyne report.html

  # Extract down to level 3
  outlyne report.html --max-level 3

  # Write only a JSON outline
  outlyne report.html --format json --output outline.json

  # Convert a DOCX first
  outlyne convert report.docx -o report.html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			logger.Init(logger.Options{
				Debug:  v.GetBool("debug"),
				Quiet:  v.GetBool("quiet"),
				JSON:   v.GetBool("log_json"),
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, v)
		},
	}

	// Global flags
	pflags := rootCmd.PersistentFlags()
	pflags.String("config", "", "config file (default $HOME/.outlyne.yaml)")
	pflags.Bool("debug", false, "enable debug logging")
	pflags.BoolP("quiet", "q", false, "suppress progress output")
	pflags.Bool("log-json", false, "write logs as JSON")

	// Extraction settings shared by every command
	pflags.IntP("max-level", "l", 2, "deepest heading level to keep (1-3)")
	pflags.String("preset", "", "configuration preset: default, deep")
	pflags.Bool("normalize-width", false, "apply NFKC so full-width numerals match")
	pflags.String("max-input-size", "50MB", "max input document size (e.g., 10MB, 0=unlimited)")

	for key, flag := range map[string]string{
		"config":          "config",
		"debug":           "debug",
		"quiet":           "quiet",
		"log_json":        "log-json",
		"max_level":       "max-level",
		"preset":          "preset",
		"normalize_width": "normalize-width",
		"max_input_size":  "max-input-size",
	} {
		_ = v.BindPFlag(key, pflags.Lookup(flag))
	}

	flags := rootCmd.Flags()
	flags.StringP("format", "f", "txt", "output format: txt, markdown, json, yaml")
	flags.StringP("output", "o", "", "write the outline to this file instead of stdout")
	flags.Bool("write-siblings", true, "write <stem>_outline.{txt,md,json} next to the input when --output is not set")
	flags.Bool("stats", true, "print cleaning statistics")
	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("write_siblings", flags.Lookup("write-siblings"))

	rootCmd.AddCommand(
		newCleanCommand(v),
		newConvertCommand(v),
		newBatchCommand(v),
		newServeCommand(v),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		logError("%v", err)
		return err
	}
	return nil
}

func initConfig(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".outlyne")
		v.SetConfigType("yaml")
	}

	// Environment variables
	v.SetEnvPrefix("OUTLYNE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// loadOutlineConfig layers preset, config file, environment and flags into
// an extraction config and validates it.
func loadOutlineConfig(v *viper.Viper) (*outline.Config, error) {
	cfg, ok := outline.Preset(v.GetString("preset"))
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", outline.ErrInvalidConfig, v.GetString("preset"))
	}

	if v.IsSet("max_level") {
		cfg.MaxLevel = v.GetInt("max_level")
	}
	if v.IsSet("max_block_runes") {
		cfg.MaxBlockRunes = v.GetInt("max_block_runes")
	}
	if v.IsSet("min_title_runes") {
		cfg.MinTitleRunes = v.GetInt("min_title_runes")
	}
	if v.IsSet("normalize_width") {
		cfg.NormalizeWidth = v.GetBool("normalize_width")
	}
	if v.IsSet("markdown_title") {
		cfg.MarkdownTitle = v.GetString("markdown_title")
	}
	if v.IsSet("caption_labels") {
		cfg = cfg.Merge(&outline.Config{CaptionLabels: v.GetStringSlice("caption_labels")})
	}
	if v.IsSet("max_input_size") {
		size, err := humanize.ParseBytes(v.GetString("max_input_size"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid max input size: %v", outline.ErrInvalidConfig, err)
		}
		cfg.MaxInputBytes = int64(size)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints a progress message to the command's stderr unless quiet.
func logInfo(cmd *cobra.Command, v *viper.Viper, format string, args ...any) {
	if !v.GetBool("quiet") {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
