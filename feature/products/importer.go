package products

import (
	"context"
	"fmt"
	"sync"

	"media-sync/feature/products/models"

	"go.uber.org/zap"
)

// Importer applies parsed product rows to the catalog in two passes: one
// creating SKUs the catalog has never seen, one updating SKUs it already
// tracks. Products are never deleted. Imports are serialized; two concurrent
// imports of the same file must not double-create a SKU.
type Importer struct {
	store  Store
	logger *zap.Logger

	mu sync.Mutex
}

// NewImporter creates an importer over the given product store.
func NewImporter(store Store, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// Import runs both passes over the rows and reports per-row outcomes.
// Created/updated is decided against the catalog as it was before the import
// started, so re-importing an unchanged file reports zero created. A row
// without a SKU is skipped. The returned error is systemic (catalog
// unreachable), not per-row.
func (im *Importer) Import(ctx context.Context, rows []models.ProductRow) (*models.ImportSummary, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	existing, err := im.store.ExistingSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing products: %w", err)
	}

	summary := models.NewImportSummary()

	// Pass 1: create rows whose SKU is new to the catalog. A later row in the
	// same file reusing a freshly created SKU counts as an update of it.
	createdNow := make(map[string]struct{})
	for _, row := range rows {
		if row.SKU == "" {
			summary.Skipped++
			continue
		}
		if _, ok := existing[row.SKU]; ok {
			continue
		}

		rec := row.Record()
		if err := im.store.Save(ctx, &rec); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d (sku %s): %v", row.Line, row.SKU, err))
			continue
		}
		if _, again := createdNow[row.SKU]; again {
			summary.Updated++
		} else {
			createdNow[row.SKU] = struct{}{}
			summary.Created++
		}
	}

	// Pass 2: update rows whose SKU predates the import.
	for _, row := range rows {
		if row.SKU == "" {
			continue
		}
		if _, ok := existing[row.SKU]; !ok {
			continue
		}

		rec := row.Record()
		if err := im.store.Save(ctx, &rec); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d (sku %s): %v", row.Line, row.SKU, err))
			continue
		}
		summary.Updated++
	}

	im.logger.Info("product import finished",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}
