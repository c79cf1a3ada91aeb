package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"media-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("StoresFetchedBytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "media-bucket", mock.Anything,
			mock.Anything, int64(len("jpeg-bytes")), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		fetcher := NewFetcher(client, "media-bucket", 5*time.Second, zap.NewNop())
		objectName, err := fetcher.Fetch(context.Background(), server.URL+"/photo.jpg", "image/jpeg")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(objectName, "media/"))
		assert.True(t, strings.HasSuffix(objectName, ".jpg"))
		client.AssertExpectations(t)
	})

	t.Run("BadStatusIsNetworkError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := NewFetcher(new(mocks.Client), "media-bucket", 5*time.Second, zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), server.URL+"/gone.jpg", "")

		var fErr *FetchError
		require.ErrorAs(t, err, &fErr)
		assert.Equal(t, FetchNetwork, fErr.Kind)
	})

	t.Run("EmptyBodyIsInvalidContent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		fetcher := NewFetcher(new(mocks.Client), "media-bucket", 5*time.Second, zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), server.URL+"/empty.jpg", "")

		var fErr *FetchError
		require.ErrorAs(t, err, &fErr)
		assert.Equal(t, FetchInvalidContent, fErr.Kind)
	})

	t.Run("UnreachableHostIsNetworkError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		fetcher := NewFetcher(new(mocks.Client), "media-bucket", time.Second, zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), server.URL+"/x.jpg", "")

		var fErr *FetchError
		require.ErrorAs(t, err, &fErr)
		assert.Equal(t, FetchNetwork, fErr.Kind)
	})

	t.Run("PutFailureIsStorageError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("bytes"))
		}))
		defer server.Close()

		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket gone"))

		fetcher := NewFetcher(client, "media-bucket", 5*time.Second, zap.NewNop())
		_, err := fetcher.Fetch(context.Background(), server.URL+"/x.jpg", "")

		var fErr *FetchError
		require.ErrorAs(t, err, &fErr)
		assert.Equal(t, FetchStorage, fErr.Kind)
	})
}

func TestHTTPFetcher_Remove(t *testing.T) {
	t.Run("RemovesObject", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("RemoveObject", mock.Anything, "media-bucket", "media/x.jpg", mock.Anything).
			Return(nil)

		fetcher := NewFetcher(client, "media-bucket", 5*time.Second, zap.NewNop())
		assert.NoError(t, fetcher.Remove(context.Background(), "media/x.jpg"))
		client.AssertExpectations(t)
	})

	t.Run("WrapsFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("denied"))

		fetcher := NewFetcher(client, "media-bucket", 5*time.Second, zap.NewNop())
		err := fetcher.Remove(context.Background(), "media/x.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "media/x.jpg")
	})
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        string
	}{
		{"FromURLPath", "https://example.com/a/photo.png", "image/jpeg", ".png"},
		{"FromMimeJPEG", "https://example.com/photo", "image/jpeg", ".jpg"},
		{"FromMimeWebP", "https://example.com/photo", "image/webp", ".webp"},
		{"UnknownMime", "https://example.com/photo", "application/octet-stream", ""},
		{"IgnoresQueryNoise", "https://example.com/photo.gif?sig=abc", "", ".gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extensionFor(tt.url, tt.contentType))
		})
	}
}
