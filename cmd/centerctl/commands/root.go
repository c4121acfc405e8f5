// Package commands implements the centerctl CLI: resolve messages offline,
// validate a catalog and publish it to Meilisearch.
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/center-locator/app/bootstrap"
	"github.com/center-locator/app/config"
	"github.com/center-locator/app/services"
	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/resolver"
)

// globalOptions flag dùng chung cho mọi lệnh
type globalOptions struct {
	configPath  string
	catalogPath string
	verbose     bool
}

// NewRootCommand tạo cây lệnh centerctl
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "centerctl",
		Short: "Center locator operator CLI",
		Long: `centerctl resolves chat messages against a center catalog without running
the HTTP service, validates catalog files and publishes them to Meilisearch.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog file (overrides catalog.source/catalog.path)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newResolveCommand(opts),
		newValidateCommand(opts),
		newPublishCommand(opts),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// env môi trường đã khởi tạo cho một lệnh
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	source   services.CatalogSource
	resolver *resolver.Resolver
	close    func()
}

func (o *globalOptions) setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.catalogPath != "" {
		cfg.Catalog.Source = "file"
		cfg.Catalog.Path = o.catalogPath
	}

	// CLI chỉ log ra stderr khi cần
	logger := zap.NewNop()
	if o.verbose {
		cfg.App.LogLevel = "debug"
		if logger, err = bootstrap.NewLogger(cfg); err != nil {
			return nil, err
		}
	}

	source, closeFn, err := bootstrap.NewCatalogSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		resolver: resolver.NewResolver(normalizer.Default(), logger),
		close: func() {
			closeFn()
			_ = logger.Sync()
		},
	}, nil
}

// loadCatalog đọc nguồn và build snapshot
func (e *env) loadCatalog(ctx context.Context) (*resolver.LoadedCatalog, error) {
	rows, err := e.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", e.source.Describe(), err)
	}
	return e.resolver.BuildIndex(rows), nil
}
