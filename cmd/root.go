package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/UnknownOlympus/jobheat/internal/config"
	"github.com/UnknownOlympus/jobheat/internal/geocoding"
	"github.com/UnknownOlympus/jobheat/internal/repository"
	"github.com/spf13/cobra"
)

// newRootCommand builds the complete command tree.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobheat",
		Short:         "Serve, import and summarize the job market heatmap.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newServeCommand())
	root.AddCommand(newImportCommand())
	root.AddCommand(newSummaryCommand())

	return root
}

// loadConfig resolves the configuration and a logger writing to out.
func loadConfig(cmd *cobra.Command, out io.Writer) (*config.Config, *slog.Logger) {
	cfg := config.MustLoad(cmd.Flags())
	return cfg, setupLogger(cfg.Env, out)
}

func storeConfig(cfg *config.Config, logger *slog.Logger) repository.Config {
	db := cfg.Store.Database

	return repository.Config{
		Type:            repository.StoreType(cfg.Store.Type),
		MongoURI:        cfg.Store.Mongo.URI,
		MongoDatabase:   cfg.Store.Mongo.Database,
		MongoCollection: cfg.Store.Mongo.Collection,
		PostgresDSN:     repository.PostgresDSN(db.Host, db.Port, db.User, db.Password, db.Name),
		SQLitePath:      cfg.Store.SQLitePath,
		Logger:          logger,
	}
}

// newProvider creates the configured geocoding provider. The Google request
// budget is shared between workers.
func newProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (geocoding.Provider, error) {
	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoding.ProviderType),
		APIKey:    cfg.Geocoding.APIKey,
		RateLimit: max(cfg.Geocoding.RateLimit/max(cfg.Geocoding.Workers, 1), 1),
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding provider: %w", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoding.ProviderType)

	return provider, nil
}
