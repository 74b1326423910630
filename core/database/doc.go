// Package database handles SQL connections for the database cache backend.
//
// It provides a wrapper around GORM to configure sqlite, MySQL or PostgreSQL
// connections from the application's configuration. The file-backed cache does
// not need it; it is only opened when CACHE_DRIVER=database.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
