package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/outlyne/internal/logger"
	"github.com/jmylchreest/outlyne/internal/output"
	"github.com/jmylchreest/outlyne/pkg/outline"
)

// siblingFormats are the outline files written next to the input.
var siblingFormats = []outline.Format{outline.FormatText, outline.FormatMarkdown, outline.FormatJSON}

func runOutline(cmd *cobra.Command, args []string, v *viper.Viper) error {
	// Validate everything before touching the input.
	cfg, err := loadOutlineConfig(v)
	if err != nil {
		return err
	}
	format, err := outline.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}

	input := defaultInput
	if len(args) > 0 {
		input = args[0]
	}
	outputPath, _ := cmd.Flags().GetString("output")
	showStats, _ := cmd.Flags().GetBool("stats")

	logInfo(cmd, v, "Extracting outline from %s (max level: %d)...", input, cfg.MaxLevel)
	logger.Debug("outline config", "config", fmt.Sprintf("%+v", *cfg))

	extractor := outline.New(cfg)
	result, err := extractor.ExtractFile(input)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Debug("extraction warning", "warning", w.String())
	}

	out := cmd.OutOrStdout()
	if showStats {
		fmt.Fprintln(out, result.Stats.String())
	}

	rendered, err := extractor.Render(result, format)
	if err != nil {
		return err
	}

	if outputPath != "" {
		n, err := output.WriteFile(outputPath, rendered)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Outline saved to: %s (%s)\n", outputPath, humanize.Bytes(uint64(n)))
	} else {
		fmt.Fprintln(out, rendered)
	}

	fmt.Fprintf(out, "\nExtracted %d headings (levels 1-%d)\n", len(result.Entries), cfg.MaxLevel)

	if outputPath == "" && v.GetBool("write_siblings") {
		return writeSiblings(out, extractor, input)
	}
	return nil
}

// writeSiblings writes one outline file per sibling format, each from its
// own extraction pass.
func writeSiblings(out io.Writer, extractor *outline.Extractor, input string) error {
	fmt.Fprintln(out, "\nGenerated files:")
	for _, f := range siblingFormats {
		result, err := extractor.ExtractFile(input)
		if err != nil {
			return err
		}
		rendered, err := extractor.Render(result, f)
		if err != nil {
			return err
		}

		path := output.SiblingPath(input, f)
		n, err := output.WriteFile(path, rendered)
		if err != nil {
			return err
		}
		logger.Debug("wrote sibling outline", "path", path, "format", f, "bytes", n)
		fmt.Fprintf(out, "  - %s (%s, %s)\n", path, f, humanize.Bytes(uint64(n)))
	}
	return nil
}
