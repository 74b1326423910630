package cache

import (
	"context"
	"fmt"

	"puzzled-pint-map/core/database"

	"go.uber.org/zap"
)

// Open builds the configured backend and returns a loaded cache.
func Open(ctx context.Context, cfg Config, dbCfg database.Config, logger *zap.Logger) (*AddressCache, error) {
	var store Store

	switch cfg.Driver {
	case DriverFile, "":
		store = NewFileStore(cfg.Path)
	case DriverDatabase:
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, err
		}
		dbStore := NewDBStore(db)
		if err := dbStore.Migrate(ctx); err != nil {
			return nil, err
		}
		store = dbStore
	default:
		return nil, fmt.Errorf("cache: unsupported driver %q", cfg.Driver)
	}

	c := New(store, cfg.Flush, logger)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	logger.Info("Address cache ready", zap.String("driver", cfg.Driver), zap.Int("entries", c.Len()))
	return c, nil
}
