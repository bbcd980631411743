package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reader loads and validates a Configuration from disk.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Read() (*Configuration, error) {
	var cfg Configuration
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid racetcp configuration (%s): %w", r.path, err)
	}

	return &cfg, nil
}
