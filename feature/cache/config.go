package cache

// Backends and flush policies.
const (
	DriverFile     = "file"
	DriverDatabase = "database"

	FlushEnd   = "end"
	FlushStore = "store"
)

// Config holds configuration for the address cache.
type Config struct {
	// Driver selects the backend (file, database).
	Driver string `mapstructure:"driver" default:"file"`
	// Path is the JSON document used by the file backend.
	Path string `mapstructure:"path" default:"data/known_addresses.json"`
	// Flush is "end" to persist once per event, or "store" to persist after every new entry.
	Flush string `mapstructure:"flush" default:"end"`
}
