package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/outlyne/internal/logger"
	"github.com/jmylchreest/outlyne/internal/output"
	"github.com/jmylchreest/outlyne/pkg/convert"
)

// maxShownWarnings bounds the conversion messages printed.
const maxShownWarnings = 5

func newConvertCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input.docx>",
		Short: "Convert a DOCX document to HTML",
		Long: `Convert renders a DOCX document as HTML: heading styles become h1-h6,
paragraphs p, tables table and drawings img.

Examples:
  outlyne convert report.docx
  outlyne convert report.docx -o build/report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], v)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output HTML file (default: input with .html extension)")
	return cmd
}

func runConvert(cmd *cobra.Command, input string, v *viper.Viper) error {
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
	}

	logInfo(cmd, v, "Converting %s...", input)
	res, err := convert.ConvertFile(input)
	if err != nil {
		return err
	}

	n, err := output.WriteFile(outputPath, res.HTML)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted: HTML saved to %s\n", outputPath)
	fmt.Fprintf(out, "HTML size: %s (%d paragraphs, %d tables, %d images)\n",
		humanize.Bytes(uint64(n)), res.Paragraphs, res.Tables, res.Images)

	if len(res.Warnings) > 0 {
		fmt.Fprintf(out, "\nConversion messages: %d\n", len(res.Warnings))
		for i, w := range res.Warnings {
			if i == maxShownWarnings {
				break
			}
			fmt.Fprintf(out, "  - %s\n", w)
		}
		logger.Debug("conversion warnings", "count", len(res.Warnings))
	}
	return nil
}
