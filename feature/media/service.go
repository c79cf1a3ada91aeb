package media

import (
	"context"

	"media-sync/feature/media/models"

	"go.uber.org/zap"
)

// Service handles media sync operations.
type Service struct {
	reconciler *Reconciler
	dropZone   *DropZone
	store      Store
	sizes      map[string]ImageSize
	logger     *zap.Logger
}

// NewService creates a new media service. Invalid extra size declarations
// are logged and skipped; the built-in registry always applies.
func NewService(store Store, fetcher Fetcher, cfg Config, logger *zap.Logger) *Service {
	sizes := DefaultSizes()
	extra, err := ParseSizes(cfg.Sizes)
	if err != nil {
		logger.Warn("Ignoring invalid media size configuration", zap.Error(err))
	} else {
		for name, size := range extra {
			sizes[name] = size
		}
	}

	reconciler := NewReconciler(store, fetcher, logger)

	return &Service{
		reconciler: reconciler,
		dropZone:   NewDropZone(cfg.DropZoneDir, reconciler, logger),
		store:      store,
		sizes:      sizes,
		logger:     logger,
	}
}

// Import reconciles a declared batch against the fingerprint store.
func (s *Service) Import(ctx context.Context, batch models.Batch) (*models.SyncResult, error) {
	return s.reconciler.Reconcile(ctx, batch)
}

// ImportFromFile reconciles a batch from the jailed drop-zone directory.
func (s *Service) ImportFromFile(ctx context.Context, name string) (*models.SyncResult, error) {
	return s.dropZone.ImportFromFile(ctx, name)
}

// GetMedia returns the tracked record for one external id.
func (s *Service) GetMedia(ctx context.Context, externalID string) (*models.MediaRecord, error) {
	return s.store.Get(ctx, externalID)
}

// ImageSizes returns the registered image size definitions.
func (s *Service) ImageSizes() map[string]ImageSize {
	return s.sizes
}
