package products

import (
	"context"

	"media-sync/feature/products/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persisted product catalog, keyed by SKU.
type Store interface {
	// ExistingSKUs returns the set of SKUs already in the catalog.
	ExistingSKUs(ctx context.Context) (map[string]struct{}, error)
	// Save creates or replaces the record for its SKU.
	Save(ctx context.Context, rec *models.ProductRecord) error
}

// GormStore persists product records through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed product store.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ExistingSKUs(ctx context.Context) (map[string]struct{}, error) {
	var skus []string
	if err := s.db.WithContext(ctx).
		Model(&models.ProductRecord{}).
		Pluck("sku", &skus).Error; err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		existing[sku] = struct{}{}
	}
	return existing, nil
}

func (s *GormStore) Save(ctx context.Context, rec *models.ProductRecord) error {
	// Upsert keyed by sku
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
}
