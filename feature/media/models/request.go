package models

import (
	"bytes"
	"encoding/json"
)

// ImportRequest is the decoded import body: either a declared batch
// (possibly empty, meaning delete-all) or a drop-zone file directive.
// Exactly one of the two is set.
type ImportRequest struct {
	// Batch is non-nil for a JSON array body.
	Batch *Batch

	// LocalFile is non-empty for a {"local_file": ...} body.
	LocalFile string
}

type localFileDirective struct {
	LocalFile string `json:"local_file"`
}

// DecodeImportRequest decodes the tagged union accepted by the import
// endpoint. The decoding happens once at the transport boundary; the core
// only ever sees a typed Batch or an explicit file directive.
func DecodeImportRequest(body []byte) (*ImportRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &ValidationError{Reason: "empty request body"}
	}

	switch trimmed[0] {
	case '[':
		var items []ExternalMediaItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &ValidationError{Reason: "malformed batch: " + err.Error()}
		}
		return &ImportRequest{Batch: &Batch{Items: items}}, nil

	case '{':
		var directive localFileDirective
		if err := json.Unmarshal(trimmed, &directive); err != nil {
			return nil, &ValidationError{Reason: "malformed request object: " + err.Error()}
		}
		if directive.LocalFile == "" {
			return nil, &ValidationError{Reason: "object body requires a local_file field"}
		}
		return &ImportRequest{LocalFile: directive.LocalFile}, nil

	default:
		return nil, &ValidationError{Reason: "body must be a JSON array or object"}
	}
}

// DecodeBatchFile decodes the content of a drop-zone file: a JSON array of
// items, or a single item object as shorthand for a one-item batch.
func DecodeBatchFile(data []byte) (Batch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Batch{}, &ValidationError{Reason: "empty batch file"}
	}

	switch trimmed[0] {
	case '[':
		var items []ExternalMediaItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Batch{}, &ValidationError{Reason: "malformed batch file: " + err.Error()}
		}
		return Batch{Items: items}, nil

	case '{':
		var item ExternalMediaItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return Batch{}, &ValidationError{Reason: "malformed batch file: " + err.Error()}
		}
		return Batch{Items: []ExternalMediaItem{item}}, nil

	default:
		return Batch{}, &ValidationError{Reason: "batch file must be a JSON array or object"}
	}
}
