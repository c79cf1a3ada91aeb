package products

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"media-sync/feature/products/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProductStore is an in-memory Store with injectable failures.
type fakeProductStore struct {
	mu      sync.Mutex
	records map[string]models.ProductRecord
	saves   int

	listErr error
	saveErr map[string]error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		records: make(map[string]models.ProductRecord),
		saveErr: make(map[string]error),
	}
}

func (s *fakeProductStore) ExistingSKUs(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	existing := make(map[string]struct{}, len(s.records))
	for sku := range s.records {
		existing[sku] = struct{}{}
	}
	return existing, nil
}

func (s *fakeProductStore) Save(ctx context.Context, rec *models.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if err, ok := s.saveErr[rec.SKU]; ok {
		return err
	}
	s.records[rec.SKU] = *rec
	return nil
}

func row(sku, name string) models.ProductRow {
	return models.ProductRow{Line: 2, SKU: sku, Name: name, Published: true}
}

func setupImporter() (*Importer, *fakeProductStore) {
	store := newFakeProductStore()
	return NewImporter(store, zap.NewNop()), store
}

func TestImporter_FirstImportCreates(t *testing.T) {
	importer, store := setupImporter()

	summary, err := importer.Import(context.Background(), []models.ProductRow{
		row("SKU-1", "First"),
		row("SKU-2", "Second"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Len(t, store.records, 2)
	assert.Equal(t, "First", store.records["SKU-1"].Name)
}

func TestImporter_ReimportUpdates(t *testing.T) {
	importer, store := setupImporter()
	rows := []models.ProductRow{row("SKU-1", "First"), row("SKU-2", "Second")}

	_, err := importer.Import(context.Background(), rows)
	require.NoError(t, err)

	rows[0].Name = "First Renamed"
	summary, err := importer.Import(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, "First Renamed", store.records["SKU-1"].Name)
}

func TestImporter_MixedFile(t *testing.T) {
	importer, store := setupImporter()
	store.records["SKU-OLD"] = models.ProductRecord{SKU: "SKU-OLD", Name: "Old"}

	summary, err := importer.Import(context.Background(), []models.ProductRow{
		row("SKU-OLD", "Old Renamed"),
		row("SKU-NEW", "Brand New"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, "Old Renamed", store.records["SKU-OLD"].Name)
}

func TestImporter_MissingSKUSkipped(t *testing.T) {
	importer, store := setupImporter()

	summary, err := importer.Import(context.Background(), []models.ProductRow{
		row("", "No SKU"),
		row("SKU-1", "Fine"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
	assert.Len(t, store.records, 1)
}

func TestImporter_DuplicateNewSKUInFile(t *testing.T) {
	// The second occurrence of a freshly created SKU counts as its update.
	importer, store := setupImporter()

	summary, err := importer.Import(context.Background(), []models.ProductRow{
		row("SKU-1", "First Pass"),
		row("SKU-1", "Second Pass"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, "Second Pass", store.records["SKU-1"].Name)
}

func TestImporter_RowFailureIsReported(t *testing.T) {
	importer, store := setupImporter()
	store.saveErr["SKU-BAD"] = errors.New("column too long")

	summary, err := importer.Import(context.Background(), []models.ProductRow{
		row("SKU-BAD", "Broken"),
		row("SKU-OK", "Fine"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.True(t, strings.Contains(summary.Errors[0], "SKU-BAD"))
	assert.NotContains(t, store.records, "SKU-BAD")
}

func TestImporter_StoreUnavailableIsSystemic(t *testing.T) {
	importer, store := setupImporter()
	store.listErr = errors.New("connection refused")

	_, err := importer.Import(context.Background(), []models.ProductRow{row("SKU-1", "First")})
	require.Error(t, err)
	assert.Equal(t, 0, store.saves)
}

func TestImporter_NeverDeletes(t *testing.T) {
	importer, store := setupImporter()
	store.records["SKU-KEEP"] = models.ProductRecord{SKU: "SKU-KEEP", Name: "Keep"}

	_, err := importer.Import(context.Background(), []models.ProductRow{row("SKU-1", "Only This")})
	require.NoError(t, err)

	assert.Contains(t, store.records, "SKU-KEEP")
	assert.Contains(t, store.records, "SKU-1")
}

func TestImporter_ConcurrentImportsDoNotDoubleCreate(t *testing.T) {
	importer, store := setupImporter()
	rows := []models.ProductRow{row("SKU-1", "Racy")}

	var wg sync.WaitGroup
	summaries := make([]*models.ImportSummary, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := importer.Import(context.Background(), rows)
			require.NoError(t, err)
			summaries[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, summaries[0].Created+summaries[1].Created)
	assert.Equal(t, 1, summaries[0].Updated+summaries[1].Updated)
	assert.Len(t, store.records, 1)
}
