package media

import (
	"time"

	"media-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the media sync feature.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Feature {
	store := NewStore(db)
	fetcher := NewFetcher(client, bucket,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second, logger)
	svc := NewService(store, fetcher, cfg, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "media"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service (used by the CLI commands).
func (f *Feature) Service() *Service {
	return f.service
}
