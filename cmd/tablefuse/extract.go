package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablefuse/tablefuse/internal/config"
	"github.com/tablefuse/tablefuse/internal/engine"
	"github.com/tablefuse/tablefuse/internal/mapping"
	"github.com/tablefuse/tablefuse/internal/model"
	"github.com/tablefuse/tablefuse/internal/source"
)

var (
	extractPages string
	extractPDF   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Reconcile tables from an extracted page dump",
	Long: `Run the reconciliation engine over a JSON page dump produced by a
document extractor. Tables split across page boundaries are merged,
duplicate storms are suppressed, and every finalized table block is
written to stdout.

When --pdf is given, the dump's page count is cross-checked against
the source PDF before any table is processed.

Examples:
  tablefuse extract --pages dump.json
  tablefuse extract --pages dump.json --pdf report.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cm.OnChange(func(cfg *config.Config) {
			logger.Info("configuration reloaded")
		})
		cm.WatchConfig()
		cfg := cm.Get()

		src, err := source.NewJSONSource(extractPages)
		if err != nil {
			return err
		}
		if extractPDF != "" {
			if err := source.VerifyPageCount(extractPDF, src.PageCount()); err != nil {
				return err
			}
		}

		emit := mapping.Func{
			ConsumerName: "stdout",
			Fn: func(block string) error {
				_, err := fmt.Fprintln(os.Stdout, block)
				return err
			},
		}

		eng := engine.New(engine.Config{
			Logger:               logger,
			Consumers:            []mapping.Consumer{mapping.WithRetry(emit, cfg.Retry.Attempts, cfg.Retry.Delay)},
			BufferCapacity:       cfg.Engine.BufferCapacity,
			EstimatedCellSize:    cfg.Engine.EstimatedCellSize,
			MaxTablesPerPage:     cfg.Engine.MaxTablesPerPage,
			MaxTotalCells:        cfg.Engine.MaxTotalCells,
			SimilarityThreshold:  cfg.Engine.SimilarityThreshold,
			DuplicateThreshold:   cfg.Engine.DuplicateThreshold,
			CacheTTL:             cfg.Engine.CacheTTL,
			CacheSweepInterval:   cfg.Engine.CacheSweepInterval,
			CacheMaxEntries:      cfg.Engine.CacheMaxEntries,
			FingerprintPrefixLen: cfg.Engine.FingerprintPrefixLen,
			VectorDimension:      cfg.Engine.VectorDimension,
			EnqueueTimeout:       cfg.Engine.EnqueueTimeout,
		})

		walkErr := src.Walk(ctx, func(pageIndex int, tables []model.Table) error {
			return eng.SubmitPage(ctx, pageIndex, tables)
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Engine.ShutdownTimeout)
		defer cancel()
		if err := eng.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown incomplete", "error", err)
		}

		return walkErr
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractPages, "pages", "", "JSON page dump to process (required)")
	extractCmd.Flags().StringVar(&extractPDF, "pdf", "", "source PDF for page-count cross-check")
	_ = extractCmd.MarkFlagRequired("pages")
}
