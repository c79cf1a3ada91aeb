package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// VariantFull is the required URL variant tag on every declared item.
const VariantFull = "full"

// DefaultMimeType is used when a declared item carries no mime type.
const DefaultMimeType = "application/octet-stream"

// ExternalMediaItem is one declared input unit of a sync batch.
// It is immutable once received; only its fingerprint and the materialized
// resource are persisted, never the item itself.
type ExternalMediaItem struct {
	// ID is the externally assigned identifier, unique within a batch.
	ID string `json:"id"`

	// Title is the display title. May be empty; see DisplayTitle.
	Title string `json:"title"`

	// MimeType is the declared mime type. May be empty; see ResolvedMimeType.
	MimeType string `json:"mime_type"`

	// URLs maps a variant tag (full, thumbnail, ...) to a source URL.
	// The "full" variant is required.
	URLs map[string]string `json:"urls"`

	// Metadata is arbitrary caller-provided data, carried into the fingerprint.
	Metadata map[string]string `json:"metadata"`
}

// DisplayTitle returns the title, or a generated one when none was declared.
func (i ExternalMediaItem) DisplayTitle() string {
	if i.Title == "" {
		return "External Media " + i.ID
	}
	return i.Title
}

// ResolvedMimeType returns the declared mime type or the default.
func (i ExternalMediaItem) ResolvedMimeType() string {
	if i.MimeType == "" {
		return DefaultMimeType
	}
	return i.MimeType
}

// FullURL returns the source URL for the full variant, falling back to the
// first variant in tag order so the choice is deterministic.
func (i ExternalMediaItem) FullURL() string {
	if url, ok := i.URLs[VariantFull]; ok {
		return url
	}
	tags := make([]string, 0, len(i.URLs))
	for tag := range i.URLs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if len(tags) == 0 {
		return ""
	}
	return i.URLs[tags[0]]
}

// fingerprintInput is the canonical form hashed by Fingerprint.
// Empty maps normalize to nil so {} and absent hash identically.
type fingerprintInput struct {
	Title    string            `json:"title"`
	MimeType string            `json:"mime_type"`
	URLs     map[string]string `json:"urls"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Fingerprint returns a deterministic digest over the item's mutable fields.
// Fingerprint equality is the sole idempotence test of the reconciler.
func (i ExternalMediaItem) Fingerprint() string {
	in := fingerprintInput{
		Title:    i.DisplayTitle(),
		MimeType: i.ResolvedMimeType(),
		URLs:     i.URLs,
		Metadata: i.Metadata,
	}
	if len(in.Metadata) == 0 {
		in.Metadata = nil
	}

	// encoding/json sorts map keys, so the digest is order-independent.
	data, _ := json.Marshal(in)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Batch is an ordered sequence of declared items. The empty batch is a total
// instruction: no external items declared, delete everything tracked.
type Batch struct {
	Items []ExternalMediaItem
}

// IsEmpty reports whether this is the distinguished delete-all batch.
func (b Batch) IsEmpty() bool {
	return len(b.Items) == 0
}

// Validate checks batch-level invariants. A violation rejects the whole
// request before any side effect.
func (b Batch) Validate() error {
	seen := make(map[string]struct{}, len(b.Items))
	for _, item := range b.Items {
		if item.ID == "" {
			return &ValidationError{Reason: "item with empty id"}
		}
		if _, dup := seen[item.ID]; dup {
			return &ValidationError{Reason: "duplicate id " + item.ID}
		}
		seen[item.ID] = struct{}{}
		if len(item.URLs) == 0 {
			return &ValidationError{Reason: "item " + item.ID + " declares no urls"}
		}
		if item.FullURL() == "" {
			return &ValidationError{Reason: "item " + item.ID + " has no usable url"}
		}
	}
	return nil
}

// ValidationError rejects a whole batch with no side effects.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid batch: " + e.Reason
}

// SyncResult reports the outcome of one reconciliation. Every id in the
// incoming batch lands in exactly one of Created/Updated/Unchanged/Errors;
// every previously tracked id absent from the batch lands in Deleted or
// Errors. Ids that failed keep their previous persisted state.
type SyncResult struct {
	Created   []string `json:"created"`
	Updated   []string `json:"updated"`
	Unchanged []string `json:"unchanged"`
	Deleted   []string `json:"deleted"`

	// Errors maps an external id to the failure detail for that id.
	Errors map[string]string `json:"errors,omitempty"`
}

// NewSyncResult returns a result with all sets allocated, so the JSON
// serialization always carries the four arrays.
func NewSyncResult() *SyncResult {
	return &SyncResult{
		Created:   []string{},
		Updated:   []string{},
		Unchanged: []string{},
		Deleted:   []string{},
		Errors:    map[string]string{},
	}
}

// Sort orders the id sets so the result is deterministic regardless of
// per-item processing order.
func (r *SyncResult) Sort() {
	sort.Strings(r.Created)
	sort.Strings(r.Updated)
	sort.Strings(r.Unchanged)
	sort.Strings(r.Deleted)
}

// HasErrors reports whether any id failed.
func (r *SyncResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// MediaRecord is the persisted state for one external id: its content
// fingerprint and the reference to the locally materialized object.
type MediaRecord struct {
	// ExternalID is the caller-assigned key.
	ExternalID string `gorm:"primaryKey;size:191;column:external_id" json:"external_id"`

	// ObjectName references the materialized object in storage (owned).
	ObjectName string `gorm:"size:255" json:"object_name"`

	// Fingerprint is the digest of the declared fields at last sync.
	Fingerprint string `gorm:"size:64" json:"fingerprint"`

	// Title and MimeType are kept for the read endpoint.
	Title    string `gorm:"size:255" json:"title"`
	MimeType string `gorm:"size:128" json:"mime_type"`

	// URLsJSON holds the declared variant URLs, JSON encoded.
	URLsJSON string `gorm:"column:urls_json;type:text" json:"-"`

	LastSyncedAt time.Time `json:"last_synced_at"`
}

// TableName sets the GORM table name.
func (MediaRecord) TableName() string {
	return "media_records"
}

// SetURLs stores the variant URL map on the record.
func (r *MediaRecord) SetURLs(urls map[string]string) {
	data, _ := json.Marshal(urls)
	r.URLsJSON = string(data)
}

// URLMap returns the stored variant URL map.
func (r *MediaRecord) URLMap() map[string]string {
	var urls map[string]string
	if err := json.Unmarshal([]byte(r.URLsJSON), &urls); err != nil {
		return map[string]string{}
	}
	return urls
}

// ResolveURL returns the URL for the given variant, falling back to the
// full variant, then to the first variant in tag order.
func (r *MediaRecord) ResolveURL(variant string) string {
	urls := r.URLMap()
	if url, ok := urls[variant]; ok {
		return url
	}
	item := ExternalMediaItem{URLs: urls}
	return item.FullURL()
}
