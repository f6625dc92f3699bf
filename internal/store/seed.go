package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"roadmap-cli/internal/model"
)

// The bundled default curriculum, used only when no local document exists.
//
//go:embed seed/roadmap.json
var seedJSON []byte

func seedDB() (*DB, error) {
	var weeks []model.Week
	if err := json.Unmarshal(seedJSON, &weeks); err != nil {
		return nil, fmt.Errorf("parse bundled seed: %w", err)
	}
	return &DB{Version: 1, Weeks: weeks}, nil
}
