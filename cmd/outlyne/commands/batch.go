package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/outlyne/internal/logger"
	"github.com/jmylchreest/outlyne/internal/output"
	"github.com/jmylchreest/outlyne/pkg/outline"
)

func newBatchCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <input_file>...",
		Short: "Extract the outlines of many documents into one report",
		Long: `Batch extracts every input concurrently and writes one record per
input, in argument order, with its outline, statistics and any error.

Examples:
  outlyne batch docs/*.html --report jsonl
  outlyne batch a.html b.html --report yaml -o outlines.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, v)
		},
	}

	flags := cmd.Flags()
	flags.String("report", "json", "report format: json, jsonl, yaml")
	flags.StringP("output", "o", "", "report file (default: stdout)")
	flags.IntP("workers", "w", runtime.GOMAXPROCS(0), "documents processed concurrently")

	return cmd
}

func runBatch(cmd *cobra.Command, inputs []string, v *viper.Viper) error {
	cfg, err := loadOutlineConfig(v)
	if err != nil {
		return err
	}
	reportName, _ := cmd.Flags().GetString("report")
	format, err := output.ParseFormat(reportName)
	if err != nil {
		return err
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		workers = 1
	}

	extractor := outline.New(cfg)
	records := make([]output.Record, len(inputs))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := extractor.ExtractFile(input)
			if err != nil {
				logger.Warn("extraction failed", "input", input, "error", err)
			} else {
				logger.Debug("extracted outline", "input", input, "entries", len(result.Entries))
			}
			records[i] = output.NewRecord(input, result, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	f, err := output.Open(outputPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := output.NewWriter(f, format)
	if err != nil {
		return err
	}
	failed := 0
	for _, rec := range records {
		if rec.Failed() {
			failed++
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	logInfo(cmd, v, "Processed %d documents (%d failed)", len(inputs), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}
