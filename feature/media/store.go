package media

import (
	"context"

	"media-sync/feature/media/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persisted mapping from external id to fingerprint record.
// Pure data layer: get, put, delete by key, nothing else.
type Store interface {
	// All returns every tracked record keyed by external id.
	All(ctx context.Context) (map[string]models.MediaRecord, error)
	// Get returns the record for one external id (gorm.ErrRecordNotFound
	// when untracked).
	Get(ctx context.Context, externalID string) (*models.MediaRecord, error)
	// Put creates or replaces the record for its external id.
	Put(ctx context.Context, rec *models.MediaRecord) error
	// Delete removes the record for the external id.
	Delete(ctx context.Context, externalID string) error
}

// GormStore persists media records through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed fingerprint store.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) All(ctx context.Context) (map[string]models.MediaRecord, error) {
	var recs []models.MediaRecord
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}

	tracked := make(map[string]models.MediaRecord, len(recs))
	for _, rec := range recs {
		tracked[rec.ExternalID] = rec
	}
	return tracked, nil
}

func (s *GormStore) Get(ctx context.Context, externalID string) (*models.MediaRecord, error) {
	var rec models.MediaRecord
	if err := s.db.WithContext(ctx).First(&rec, "external_id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) Put(ctx context.Context, rec *models.MediaRecord) error {
	// Upsert keyed by external id
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
}

func (s *GormStore) Delete(ctx context.Context, externalID string) error {
	return s.db.WithContext(ctx).
		Delete(&models.MediaRecord{}, "external_id = ?", externalID).Error
}
