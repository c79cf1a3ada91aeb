package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"media-sync/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// maxFetchBytes bounds a single fetched object (64 MiB).
const maxFetchBytes = 64 << 20

// objectPrefix is the storage prefix under which media objects live.
const objectPrefix = "media/"

// Fetcher retrieves bytes from a source URL and materializes them as a
// managed object, returning the object name usable as a resource reference.
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL, mimeHint string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// HTTPFetcher fetches over HTTP with a bounded timeout and stores the bytes
// in object storage.
type HTTPFetcher struct {
	client *http.Client
	store  storage.Client
	bucket string
	logger *zap.Logger
}

// NewFetcher creates an HTTP fetcher writing into the given bucket.
func NewFetcher(store storage.Client, bucket string, timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		store:  store,
		bucket: bucket,
		logger: logger,
	}
}

// Fetch retrieves the URL and stores the response body as a new object.
// Every failure surfaces as a *FetchError; the caller records it per id.
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL, mimeHint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", &FetchError{Kind: FetchNetwork, URL: sourceURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Kind: FetchNetwork, URL: sourceURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Kind: FetchNetwork, URL: sourceURL,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return "", &FetchError{Kind: FetchNetwork, URL: sourceURL, Err: err}
	}
	if len(body) == 0 {
		return "", &FetchError{Kind: FetchInvalidContent, URL: sourceURL,
			Err: fmt.Errorf("empty response body")}
	}
	if len(body) > maxFetchBytes {
		return "", &FetchError{Kind: FetchInvalidContent, URL: sourceURL,
			Err: fmt.Errorf("response exceeds %d bytes", maxFetchBytes)}
	}

	contentType := mimeHint
	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}

	// A fresh name per fetch: on an update the old object is only released
	// after the new one is durably stored, so names must never collide.
	objectName := objectPrefix + uuid.New().String() + extensionFor(sourceURL, contentType)

	_, err = f.store.PutObject(ctx, f.bucket, objectName,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", &FetchError{Kind: FetchStorage, URL: sourceURL, Err: err}
	}

	f.logger.Debug("Materialized media object",
		zap.String("object", objectName),
		zap.Int("bytes", len(body)),
	)

	return objectName, nil
}

// Remove deletes a materialized object. Removing an already absent object
// is not an error, which keeps retries idempotent.
func (f *HTTPFetcher) Remove(ctx context.Context, objectName string) error {
	err := f.store.RemoveObject(ctx, f.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", objectName, err)
	}
	return nil
}

// extensionFor derives a file extension from the URL path, falling back to
// a few well-known mime types.
func extensionFor(sourceURL, contentType string) string {
	if u, err := url.Parse(sourceURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
			return ext
		}
	}

	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
