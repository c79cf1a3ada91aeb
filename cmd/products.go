package cmd

import (
	"context"
	"fmt"
	"os"

	"media-sync/core/config"
	"media-sync/core/database"
	"media-sync/core/logger"
	"media-sync/feature/products"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// productsCmd runs a one-shot product CSV import.
var productsCmd = &cobra.Command{
	Use:   "products <file.csv>",
	Short: "Import products from a CSV file",
	Long: `Imports a WooCommerce-style product CSV into the catalog. New SKUs are
created, known SKUs are updated, rows without a SKU are skipped.

Examples:
  media-sync products ./exports/products.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runProducts,
}

func init() {
	RootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if problems, err := database.VerifySchema(db, expectedSchema); err != nil {
		l.Warn("Schema verification failed", zap.Error(err))
	} else {
		for _, p := range problems {
			l.Warn("Schema problem", zap.String("detail", p))
		}
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read csv: %w", err)
	}

	svc := products.NewFeature(db, l).Service()

	summary, err := svc.ImportCSV(ctx, data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	l.Info("Product import finished",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	for _, msg := range summary.Errors {
		l.Warn("Row failed", zap.String("error", msg))
	}
	return nil
}
