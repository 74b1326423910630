package cities

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"puzzled-pint-map/core/utils"
)

// FileStore keeps the registry as one JSON array. Every save first copies the
// previous document to BackupPath.
type FileStore struct {
	Path       string
	BackupPath string
}

// NewFileStore creates a file-backed store with a ".bak" backup next to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, BackupPath: path + ".bak"}
}

// Load reads the registry. A missing document is an error: the registry is
// created by importing the city list first.
func (s *FileStore) Load(ctx context.Context) ([]CityRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s (import the city list first): %w", s.Path, err)
	}

	var records []CityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.Path, err)
	}
	return records, nil
}

// Save backs up the current document and replaces it.
func (s *FileStore) Save(ctx context.Context, records []CityRecord) error {
	if records == nil {
		records = []CityRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := utils.BackupFile(s.Path, s.BackupPath); err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.Path, data)
}
