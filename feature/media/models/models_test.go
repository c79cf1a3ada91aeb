package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	item := ExternalMediaItem{
		ID:       "item-1",
		Title:    "A Title",
		MimeType: "image/jpeg",
		URLs: map[string]string{
			"full":      "https://example.com/a.jpg",
			"thumbnail": "https://example.com/a-thumb.jpg",
		},
	}

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, item.Fingerprint(), item.Fingerprint())
	})

	t.Run("TitleChangeChangesDigest", func(t *testing.T) {
		changed := item
		changed.Title = "Another Title"
		assert.NotEqual(t, item.Fingerprint(), changed.Fingerprint())
	})

	t.Run("URLChangeChangesDigest", func(t *testing.T) {
		changed := item
		changed.URLs = map[string]string{"full": "https://example.com/b.jpg"}
		assert.NotEqual(t, item.Fingerprint(), changed.Fingerprint())
	})

	t.Run("EmptyMetadataEqualsAbsent", func(t *testing.T) {
		withEmpty := item
		withEmpty.Metadata = map[string]string{}
		assert.Equal(t, item.Fingerprint(), withEmpty.Fingerprint())
	})

	t.Run("DefaultTitleEqualsExplicitDefault", func(t *testing.T) {
		implicit := item
		implicit.Title = ""
		explicit := item
		explicit.Title = "External Media item-1"
		assert.Equal(t, implicit.Fingerprint(), explicit.Fingerprint())
	})
}

func TestExternalMediaItem_FullURL(t *testing.T) {
	t.Run("PrefersFull", func(t *testing.T) {
		item := ExternalMediaItem{URLs: map[string]string{
			"full":      "https://example.com/full.jpg",
			"thumbnail": "https://example.com/thumb.jpg",
		}}
		assert.Equal(t, "https://example.com/full.jpg", item.FullURL())
	})

	t.Run("FallsBackDeterministically", func(t *testing.T) {
		item := ExternalMediaItem{URLs: map[string]string{
			"thumbnail": "https://example.com/thumb.jpg",
			"medium":    "https://example.com/medium.jpg",
		}}
		// First variant in tag order
		assert.Equal(t, "https://example.com/medium.jpg", item.FullURL())
	})

	t.Run("EmptyURLs", func(t *testing.T) {
		assert.Empty(t, ExternalMediaItem{}.FullURL())
	})
}

func TestBatch_Validate(t *testing.T) {
	valid := ExternalMediaItem{ID: "a", URLs: map[string]string{"full": "https://example.com/a.jpg"}}

	tests := []struct {
		name    string
		batch   Batch
		wantErr string
	}{
		{"Valid", Batch{Items: []ExternalMediaItem{valid}}, ""},
		{"EmptyBatch", Batch{}, ""},
		{"EmptyID", Batch{Items: []ExternalMediaItem{{URLs: map[string]string{"full": "x"}}}}, "empty id"},
		{"DuplicateID", Batch{Items: []ExternalMediaItem{valid, valid}}, "duplicate id"},
		{"NoURLs", Batch{Items: []ExternalMediaItem{{ID: "b"}}}, "declares no urls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.batch.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDecodeImportRequest(t *testing.T) {
	t.Run("ArrayBatch", func(t *testing.T) {
		req, err := DecodeImportRequest([]byte(`[{"id":"a","urls":{"full":"https://example.com/a.jpg"}}]`))
		require.NoError(t, err)
		require.NotNil(t, req.Batch)
		assert.Len(t, req.Batch.Items, 1)
		assert.Empty(t, req.LocalFile)
	})

	t.Run("EmptyArrayIsDeleteAll", func(t *testing.T) {
		req, err := DecodeImportRequest([]byte(`[]`))
		require.NoError(t, err)
		require.NotNil(t, req.Batch)
		assert.True(t, req.Batch.IsEmpty())
	})

	t.Run("LocalFileDirective", func(t *testing.T) {
		req, err := DecodeImportRequest([]byte(`{"local_file":"batch.json"}`))
		require.NoError(t, err)
		assert.Nil(t, req.Batch)
		assert.Equal(t, "batch.json", req.LocalFile)
	})

	t.Run("ObjectWithoutLocalFile", func(t *testing.T) {
		_, err := DecodeImportRequest([]byte(`{"id":"a"}`))
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := DecodeImportRequest([]byte(`not json`))
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		_, err := DecodeImportRequest(nil)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestDecodeBatchFile(t *testing.T) {
	t.Run("Array", func(t *testing.T) {
		batch, err := DecodeBatchFile([]byte(`[{"id":"a","urls":{"full":"u"}},{"id":"b","urls":{"full":"u"}}]`))
		require.NoError(t, err)
		assert.Len(t, batch.Items, 2)
	})

	t.Run("SingleObjectShorthand", func(t *testing.T) {
		batch, err := DecodeBatchFile([]byte(`{"id":"a","urls":{"full":"u"}}`))
		require.NoError(t, err)
		require.Len(t, batch.Items, 1)
		assert.Equal(t, "a", batch.Items[0].ID)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := DecodeBatchFile([]byte(`[{`))
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestMediaRecord_URLs(t *testing.T) {
	rec := MediaRecord{ExternalID: "a"}
	rec.SetURLs(map[string]string{
		"full":      "https://example.com/full.jpg",
		"thumbnail": "https://example.com/thumb.jpg",
	})

	assert.Equal(t, "https://example.com/thumb.jpg", rec.ResolveURL("thumbnail"))
	assert.Equal(t, "https://example.com/full.jpg", rec.ResolveURL("medium"))
	assert.Len(t, rec.URLMap(), 2)

	corrupt := MediaRecord{URLsJSON: "{"}
	assert.Empty(t, corrupt.URLMap())
	assert.Empty(t, corrupt.ResolveURL("full"))
}
