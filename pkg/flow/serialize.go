package flow

import (
	"encoding/json"
	"fmt"
	"os"
)

// Result bundles the label table with the groups derived from it, so the two
// can be cached and transported as one artifact.
type Result struct {
	Labels map[string]string `json:"labels" bson:"labels"`
	Groups []Group           `json:"groups" bson:"groups"`
}

// MarshalResult serializes a Result to JSON bytes.
func MarshalResult(r Result) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalResult deserializes a Result from JSON bytes.
func UnmarshalResult(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("unmarshal flow result: %w", err)
	}
	return r, nil
}

// WriteResultFile writes a Result to a pretty-printed JSON file.
func WriteResultFile(r Result, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
