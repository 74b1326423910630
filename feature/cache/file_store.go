package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/core/utils"
)

// FileStore keeps the cache as a single JSON object keyed by full address.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the JSON document. A missing file is an empty cache.
func (s *FileStore) Load(ctx context.Context) (map[string]geocode.Location, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]geocode.Location{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	entries := map[string]geocode.Location{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return entries, nil
}

// Save writes the document through a temporary file so a crash never leaves it half written.
func (s *FileStore) Save(ctx context.Context, entries map[string]geocode.Location) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	return utils.WriteFileAtomic(s.path, data)
}
