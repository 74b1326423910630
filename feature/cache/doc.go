// Package cache implements the persistent address cache.
//
// The cache maps a normalized full address ("5600 Roswell Rd, Atlanta, GA 30342")
// to the location the geocoding provider returned for it, including city-level
// fallbacks. It is loaded wholesale when a run starts and saved wholesale when
// the run ends, even if some lookups failed, so the provider is never asked
// twice for the same address across runs.
//
// # Backends
//
//   - FileStore: one JSON document, written atomically (CACHE_DRIVER=file).
//   - DBStore: a known_addresses table through GORM on sqlite, MySQL or
//     PostgreSQL (CACHE_DRIVER=database).
//
// # Flush Policy
//
// With CACHE_FLUSH=end the cache is written once per event. CACHE_FLUSH=store
// writes after every new entry, trading throughput for less loss on a crash.
package cache
