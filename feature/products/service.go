package products

import (
	"bytes"
	"context"

	"media-sync/feature/products/models"

	"go.uber.org/zap"
)

// Service handles product import operations.
type Service struct {
	importer *Importer
	logger   *zap.Logger
}

// NewService creates a new product service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		importer: NewImporter(store, logger),
		logger:   logger,
	}
}

// ImportCSV parses raw CSV bytes and applies them to the catalog.
func (s *Service) ImportCSV(ctx context.Context, data []byte) (*models.ImportSummary, error) {
	rows, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.importer.Import(ctx, rows)
}
