// Package config provides configuration management for the map builder.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded through godotenv, so GOOGLE_API_KEY can live next to
// the data files the same way it always has).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Geocode: Google API key, region bias and request timeout
//   - Events: Event feed URL template and HTTP timeout
//   - Cache: Address cache backend (file or database), path and flush policy
//   - Registry: City registry document path and flush policy
//   - Pipeline: Present event id, recency window and distance warning threshold
//   - Output: Feature collection directory and optional bucket mirror
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: SQL connection details for the database cache backend
//
// Defaults are declared on the sub-config structs with `default:"..."` tags and
// every key is reachable through an upper-cased environment variable, e.g.
// PIPELINE_PRESENT_EVENT_ID or CACHE_DRIVER.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.PresentEventID)
package config
