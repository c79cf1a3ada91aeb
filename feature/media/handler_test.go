package media

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *fakeStore, *fakeFetcher) {
	app := fiber.New()
	store := newFakeStore()
	fetcher := newFakeFetcher()
	cfg := Config{DropZoneDir: t.TempDir(), FetchTimeoutSeconds: 5}
	svc := NewService(store, fetcher, cfg, zap.NewNop())
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, store, fetcher
}

func TestHandleImport(t *testing.T) {
	t.Run("CreatesBatch", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		payload := `[{"id":"e2e-sync-test","title":"Original Title","urls":{"full":"https://example.com/sync-image.jpg"}}]`
		req := httptest.NewRequest("POST", "/media/import", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["success"])

		results := body["results"].(map[string]any)
		assert.Equal(t, []any{"e2e-sync-test"}, results["created"])
	})

	t.Run("EmptyArrayDeletesAll", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		// Seed one tracked record
		payload := `[{"id":"a","urls":{"full":"https://example.com/a.jpg"}}]`
		req := httptest.NewRequest("POST", "/media/import", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		_, err := app.Test(req)
		require.NoError(t, err)

		req = httptest.NewRequest("POST", "/media/import", strings.NewReader(`[]`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		results := body["results"].(map[string]any)
		assert.Equal(t, []any{"a"}, results["deleted"])
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		req := httptest.NewRequest("POST", "/media/import", strings.NewReader(`{"wat":1}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("DuplicateIDIs400", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		payload := `[{"id":"a","urls":{"full":"u"}},{"id":"a","urls":{"full":"u"}}]`
		req := httptest.NewRequest("POST", "/media/import", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("LocalFileEscapeIs400", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		req := httptest.NewRequest("POST", "/media/import",
			strings.NewReader(`{"local_file":"../etc/passwd"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("StoreFailureIs500", func(t *testing.T) {
		app, store, _ := setupTestApp(t)
		store.allErr = assert.AnError

		payload := `[{"id":"a","urls":{"full":"https://example.com/a.jpg"}}]`
		req := httptest.NewRequest("POST", "/media/import", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandleImageSizes(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/media/image-sizes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sizes map[string]ImageSize
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sizes))
	assert.Equal(t, 150, sizes["thumbnail"].Width)
	assert.True(t, sizes["thumbnail"].Crop)
	assert.Contains(t, sizes, "large")
}

func TestHandleGetMedia(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		payload := `[{"id":"a","title":"A","urls":{"full":"https://example.com/a.jpg","thumbnail":"https://example.com/a-thumb.jpg"}}]`
		req := httptest.NewRequest("POST", "/media/import", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		_, err := app.Test(req)
		require.NoError(t, err)

		req = httptest.NewRequest("GET", "/media/a", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "https://example.com/a.jpg", body["source_url"])
	})

	t.Run("UnknownIs404", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		req := httptest.NewRequest("GET", "/media/nope", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
