package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-sync/feature/media/models"

	"go.uber.org/zap"
)

// DropZone imports batches from files inside a jailed directory instead of
// an HTTP body. The jail is absolute: any name resolving outside the root
// is rejected before the target is touched.
type DropZone struct {
	root       string
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewDropZone creates a drop-zone importer rooted at dir.
func NewDropZone(dir string, reconciler *Reconciler, logger *zap.Logger) *DropZone {
	return &DropZone{
		root:       dir,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Resolve maps a caller-supplied name to a path inside the jail. Absolute
// paths and any traversal above the root fail with ErrPathViolation; the
// lexical checks run before any filesystem access. Symlinks are followed
// and the final target must still be inside the root.
func (d *DropZone) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", ErrPathViolation)
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: absolute path %s", ErrPathViolation, name)
	}

	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathViolation, name)
	}

	rootReal, err := filepath.EvalSymlinks(d.root)
	if err != nil {
		return "", fmt.Errorf("drop-zone root unavailable: %w", err)
	}

	full := filepath.Join(rootReal, clean)
	real, err := filepath.EvalSymlinks(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("batch file not found: %w", err)
		}
		return "", fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	rel, err := filepath.Rel(rootReal, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s resolves outside the root", ErrPathViolation, name)
	}

	return real, nil
}

// ImportFromFile reads a batch from the jailed directory, reconciles it,
// and manages the source file's lifecycle: deleted after a successful run,
// retained on any systemic failure so a retry can be attempted. Losing the
// only copy of an unprocessed batch would be data loss, hence the ordering.
// Deletion is not transactional with reconciliation; a crash in between is
// safe because re-reconciling an applied batch reports everything unchanged.
func (d *DropZone) ImportFromFile(ctx context.Context, name string) (*models.SyncResult, error) {
	full, err := d.Resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	batch, err := models.DecodeBatchFile(data)
	if err != nil {
		// Parse failure retains the file.
		return nil, err
	}

	res, err := d.reconciler.Reconcile(ctx, batch)
	if err != nil {
		// Systemic failure: the file stays for a retry.
		return nil, err
	}

	// Per-item errors are not systemic; the batch ran, the file is consumed.
	if err := os.Remove(full); err != nil {
		d.logger.Warn("Failed to delete consumed drop-zone file",
			zap.String("file", full), zap.Error(err))
	} else {
		d.logger.Info("Drop-zone file imported",
			zap.String("file", name),
			zap.Int("items", len(batch.Items)),
		)
	}

	return res, nil
}
