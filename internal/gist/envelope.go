package gist

import (
	"bytes"
	"encoding/json"
	"errors"

	"roadmap-cli/internal/model"
)

// Envelope is the versioned wrapper around the week array stored remotely.
// The version tag exists for schema evolution; EnvelopeVersion is the only
// version ever written.
type Envelope struct {
	RoadmapData []model.Week `json:"roadmapData"`
	LastUpdated string       `json:"lastUpdated"`
	SyncedFrom  string       `json:"syncedFrom"`
	Version     string       `json:"version"`
}

const EnvelopeVersion = "1.0"

var errEmptyDocument = errors.New("empty document")

// DecodeDocument normalizes a remote document to a week slice. Two formats
// are accepted on read: the current envelope and the legacy bare array that
// early clients uploaded. This dual-format tolerance is a compatibility
// contract; gists written by old clients must keep working.
func DecodeDocument(raw []byte) ([]model.Week, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmptyDocument
	}
	if trimmed[0] == '[' {
		var weeks []model.Week
		if err := json.Unmarshal(trimmed, &weeks); err != nil {
			return nil, err
		}
		return weeks, nil
	}
	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.RoadmapData == nil {
		return nil, errors.New("document has no roadmapData")
	}
	return env.RoadmapData, nil
}
