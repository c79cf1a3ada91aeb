package cmd

import (
	"context"
	"fmt"

	"media-sync/core/config"
	"media-sync/core/database"
	"media-sync/core/logger"
	"media-sync/core/storage"
	"media-sync/feature/media"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// expectedSchema lists the columns the sync tables must carry. Used to warn
// about half-applied migrations before a CLI import runs.
var expectedSchema = map[string][]string{
	"media_records":   {"external_id", "object_name", "fingerprint", "title", "mime_type", "urls_json", "last_synced_at"},
	"product_records": {"sku", "type", "name", "published", "regular_price", "stock", "stock_status"},
}

// syncCmd runs a one-shot media reconciliation from a drop-zone batch file.
var syncCmd = &cobra.Command{
	Use:   "sync <file>",
	Short: "Reconcile media from a drop-zone batch file",
	Long: `Reconciles the declared media batch in the named drop-zone file against
the tracked state. The file name is resolved inside the configured drop-zone
directory and is deleted once the import succeeds.

Examples:
  # Import the batch dropped at <drop-zone>/batch.json
  media-sync sync batch.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := media.NewFeature(db, client, cfg.Storage.Bucket, cfg.Media, l).Service()

	res, err := svc.ImportFromFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	l.Info("Sync finished",
		zap.Strings("created", res.Created),
		zap.Strings("updated", res.Updated),
		zap.Strings("unchanged", res.Unchanged),
		zap.Strings("deleted", res.Deleted),
		zap.Int("errors", len(res.Errors)),
	)
	for id, msg := range res.Errors {
		l.Warn("Item failed", zap.String("id", id), zap.String("error", msg))
	}
	return nil
}
