package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"roadmap-cli/internal/model"
)

// ErrNotArray rejects import files whose top-level JSON value is not a week
// array. Rejection leaves local state untouched.
type ErrNotArray struct {
	Path string
}

func (e ErrNotArray) Error() string {
	return fmt.Sprintf("import rejected: %s is not a JSON array of weeks", e.Path)
}

// Export writes the full week collection to path as a bare JSON array, the
// same shape Import accepts.
func Export(path string, weeks []model.Week) error {
	b, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// Import parses a user-supplied backup file. Only a top-level array is
// accepted; any other shape returns ErrNotArray and the caller must not
// change state.
func Import(path string) ([]model.Week, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// json.Unmarshal happily decodes "null" into a nil slice, which would
	// wipe local state downstream. Require a literal array at the top level.
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray{Path: path}
	}
	var weeks []model.Week
	if err := json.Unmarshal(trimmed, &weeks); err != nil {
		return nil, ErrNotArray{Path: path}
	}
	return weeks, nil
}
