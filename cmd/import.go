package main

import (
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/jobheat/internal/ingest"
	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/UnknownOlympus/jobheat/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Replace all stored jobs with a scraper CSV export (stdin when no file is given).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger := loadConfig(cmd, os.Stderr)

			var input io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open export: %w", err)
				}
				defer file.Close()
				input = file
			}

			repo, err := repository.Open(ctx, storeConfig(cfg, logger))
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close store", "error", err)
				}
			}()

			provider, err := newProvider(ctx, cfg, logger)
			if err != nil {
				return err
			}

			importer := ingest.NewImporter(
				logger,
				repo,
				provider,
				metrics.NewMetrics(prometheus.NewRegistry()),
				cfg.Geocoding.Workers,
				cfg.ImportLock,
				cfg.Geocoding.AddressSuffix,
			)

			result, err := importer.Import(ctx, input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d rows, %d geocoded\n",
				result.Written, result.Read, result.Geocoded)
			return err
		},
	}
}
