package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/center-locator/app/bootstrap"
	"github.com/center-locator/app/services"
)

func newPublishCommand(opts *globalOptions) *cobra.Command {
	var (
		host      string
		apiKey    string
		indexName string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Mirror the catalog into a Meilisearch index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			cat, err := e.loadCatalog(ctx)
			if err != nil {
				return err
			}
			if cat.Empty() {
				return services.ErrEmptyCatalog
			}

			if host != "" {
				e.cfg.Meilisearch.URL = host
			}
			if apiKey != "" {
				e.cfg.Meilisearch.APIKey = apiKey
			}
			if indexName != "" {
				e.cfg.Meilisearch.IndexName = indexName
			}

			indexer := bootstrap.NewIndexer(e.cfg, e.logger)
			report, err := indexer.Publish(ctx, cat.Version, services.CenterDocuments(cat))
			if err != nil {
				return fmt.Errorf("publish: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published %d centers to %s in %d batches (catalog %s)\n",
				report.Documents, report.Index, report.Batches, report.CatalogVersion)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Meilisearch URL (overrides meilisearch.url)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Meilisearch API key (overrides meilisearch.api_key)")
	cmd.Flags().StringVar(&indexName, "index", "", "index name (overrides meilisearch.index_name)")
	return cmd
}
