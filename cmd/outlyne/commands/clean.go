package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/outlyne/internal/output"
	"github.com/jmylchreest/outlyne/pkg/outline"
)

func newCleanCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [input_file]",
		Short: "Print the sanitized document the heading matcher sees",
		Long: `Clean applies the sanitizer alone and writes what survives, which helps
calibrate the caption labels and the long-paragraph threshold.

Examples:
  # Show the surviving blocks, one per line
  outlyne clean report.html --format text

  # Pretty-printed HTML to a file
  outlyne clean report.html -o reduced.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, v)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "html", "output format: html, text, markdown")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats-only", false, "only print statistics")

	return cmd
}

func runClean(cmd *cobra.Command, args []string, v *viper.Viper) error {
	cfg, err := loadOutlineConfig(v)
	if err != nil {
		return err
	}
	formatName, _ := cmd.Flags().GetString("format")
	format, err := outline.ParseReducedFormat(formatName)
	if err != nil {
		return err
	}

	input := defaultInput
	if len(args) > 0 {
		input = args[0]
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	reduced, err := outline.New(cfg).Reduce(f, format)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	logInfo(cmd, v, "%s", reduced.Stats.String())

	if statsOnly, _ := cmd.Flags().GetBool("stats-only"); statsOnly {
		return nil
	}

	outputPath, _ := cmd.Flags().GetString("output")
	w, err := output.Open(outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, reduced.Content); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
