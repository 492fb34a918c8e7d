package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/outlyne/internal/logger"
	"github.com/jmylchreest/outlyne/internal/server"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve outline extraction over HTTP",
		Long: `Serve exposes the extractor over HTTP:

  GET  /health
  POST /api/outline?max_level=2&format=json   (HTML body)
  POST /api/clean?format=text                 (HTML body)
  POST /api/convert                           (DOCX body)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadOutlineConfig(v)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return server.New(cfg, logger.Logger()).ListenAndServe(ctx, v.GetString("addr"))
		},
	}

	cmd.Flags().String("addr", ":8090", "listen address")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))

	return cmd
}
