package media

import (
	"context"
	"sync"
	"time"

	"media-sync/feature/media/models"

	"go.uber.org/zap"
)

// Reconciler turns a declared batch into the persisted state, computing the
// difference against the fingerprint store and applying create, update, and
// delete actions through the fetcher and the store.
type Reconciler struct {
	store   Store
	fetcher Fetcher
	logger  *zap.Logger

	// mu serializes mutation of the id space. Two concurrent batches must
	// not both observe "id absent" and double-create. Read-only operations
	// never take this lock; the store itself is not locked either, so
	// unrelated reads proceed while a batch is being applied.
	mu sync.Mutex
}

// NewReconciler creates a reconciler over the given store and fetcher.
func NewReconciler(store Store, fetcher Fetcher, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Reconcile applies one declared batch and reports per-id outcomes.
//
// Per item: untracked ids are materialized and created; tracked ids with an
// equal fingerprint are left untouched (no fetch, no write); tracked ids
// with a differing fingerprint are re-materialized and replaced. A failed
// item lands in the error map with its previous persisted state preserved,
// and the batch continues. Tracked ids absent from the batch are deleted,
// object first, record second; the empty batch therefore deletes everything.
//
// A *models.ValidationError (malformed batch) or *PersistenceError (store
// unreachable) aborts the whole call with no, or no further, side effects.
func (r *Reconciler) Reconcile(ctx context.Context, batch models.Batch) (*models.SyncResult, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tracked, err := r.store.All(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "load tracked records", Err: err}
	}

	res := models.NewSyncResult()
	seen := make(map[string]struct{}, len(batch.Items))

	for _, item := range batch.Items {
		seen[item.ID] = struct{}{}
		r.applyItem(ctx, item, tracked, res)
	}

	// Everything tracked before this call but absent from the batch goes.
	// Ids that just failed to create are not in tracked, so a failed create
	// can never be reported as deleted in the same pass.
	for id, rec := range tracked {
		if _, inBatch := seen[id]; inBatch {
			continue
		}
		r.deleteRecord(ctx, id, rec, res)
	}

	res.Sort()

	r.logger.Info("Reconciliation completed",
		zap.Int("created", len(res.Created)),
		zap.Int("updated", len(res.Updated)),
		zap.Int("unchanged", len(res.Unchanged)),
		zap.Int("deleted", len(res.Deleted)),
		zap.Int("errors", len(res.Errors)),
	)

	return res, nil
}

// applyItem processes a single declared item against the tracked snapshot.
func (r *Reconciler) applyItem(ctx context.Context, item models.ExternalMediaItem, tracked map[string]models.MediaRecord, res *models.SyncResult) {
	l := r.logger.With(zap.String("external_id", item.ID))

	prev, exists := tracked[item.ID]
	fingerprint := item.Fingerprint()

	if exists && prev.Fingerprint == fingerprint {
		// Pure idempotence: no fetch, no write.
		res.Unchanged = append(res.Unchanged, item.ID)
		return
	}

	objectName, err := r.fetcher.Fetch(ctx, item.FullURL(), item.ResolvedMimeType())
	if err != nil {
		// Create: no record is left behind, a retry behaves as a fresh
		// create. Update: the old record stays untouched.
		l.Warn("Materialization failed", zap.Error(err))
		res.Errors[item.ID] = err.Error()
		return
	}

	rec := models.MediaRecord{
		ExternalID:   item.ID,
		ObjectName:   objectName,
		Fingerprint:  fingerprint,
		Title:        item.DisplayTitle(),
		MimeType:     item.ResolvedMimeType(),
		LastSyncedAt: time.Now().UTC(),
	}
	rec.SetURLs(item.URLs)

	if err := r.store.Put(ctx, &rec); err != nil {
		// Roll back the fresh object so no half-written state survives.
		if rmErr := r.fetcher.Remove(ctx, objectName); rmErr != nil {
			l.Warn("Orphaned object after failed record write", zap.Error(rmErr))
		}
		l.Warn("Record write failed", zap.Error(err))
		res.Errors[item.ID] = err.Error()
		return
	}

	if exists {
		// Release the previous object only after the new one is durably
		// stored and referenced.
		if err := r.fetcher.Remove(ctx, prev.ObjectName); err != nil {
			l.Warn("Failed to release replaced object", zap.Error(err))
		}
		res.Updated = append(res.Updated, item.ID)
		return
	}

	res.Created = append(res.Created, item.ID)
}

// deleteRecord removes one tracked id: the owned object first, the record
// second. A failure at either step reports the id in the error map and
// leaves whatever remains for the next pass; object removal is idempotent,
// so retries converge.
func (r *Reconciler) deleteRecord(ctx context.Context, id string, rec models.MediaRecord, res *models.SyncResult) {
	if err := r.fetcher.Remove(ctx, rec.ObjectName); err != nil {
		r.logger.Warn("Failed to remove object for deleted id",
			zap.String("external_id", id), zap.Error(err))
		res.Errors[id] = err.Error()
		return
	}

	if err := r.store.Delete(ctx, id); err != nil {
		r.logger.Warn("Failed to delete record",
			zap.String("external_id", id), zap.Error(err))
		res.Errors[id] = err.Error()
		return
	}

	res.Deleted = append(res.Deleted, id)
}
