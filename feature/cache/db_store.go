package cache

import (
	"context"
	"fmt"
	"time"

	"puzzled-pint-map/core/geocode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saveBatchSize bounds the number of rows per upsert statement.
const saveBatchSize = 200

// KnownAddress is the database row for one cached resolution.
type KnownAddress struct {
	FullAddress      string  `gorm:"primaryKey;size:512"`
	FormattedAddress string  `gorm:"size:512"`
	Latitude         float64 `gorm:"not null"`
	Longitude        float64 `gorm:"not null"`
	UpdatedAt        time.Time
}

// TableName pins the table name regardless of naming strategy.
func (KnownAddress) TableName() string {
	return "known_addresses"
}

// DBStore keeps the cache in a SQL table through GORM.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a database-backed store.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates or updates the known_addresses table.
func (s *DBStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&KnownAddress{}); err != nil {
		return fmt.Errorf("failed to migrate known_addresses: %w", err)
	}
	return nil
}

// Load reads every row.
func (s *DBStore) Load(ctx context.Context) (map[string]geocode.Location, error) {
	var rows []KnownAddress
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load known_addresses: %w", err)
	}

	entries := make(map[string]geocode.Location, len(rows))
	for _, row := range rows {
		entries[row.FullAddress] = geocode.Location{
			FormattedAddress: row.FormattedAddress,
			Latitude:         row.Latitude,
			Longitude:        row.Longitude,
		}
	}
	return entries, nil
}

// Save upserts every entry keyed by full address.
func (s *DBStore) Save(ctx context.Context, entries map[string]geocode.Location) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]KnownAddress, 0, len(entries))
	for fullAddress, loc := range entries {
		rows = append(rows, KnownAddress{
			FullAddress:      fullAddress,
			FormattedAddress: loc.FormattedAddress,
			Latitude:         loc.Latitude,
			Longitude:        loc.Longitude,
		})
	}

	for start := 0; start < len(rows); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&batch).Error
		if err != nil {
			return fmt.Errorf("failed to save known_addresses: %w", err)
		}
	}
	return nil
}
