package locations

// SourceConfig configures the event location feed.
type SourceConfig struct {
	// URLTemplate is the feed URL with a %d placeholder for the event id.
	URLTemplate string `mapstructure:"url_template" default:"https://puzzledpint.com/legacy-pp-locations.php?id=%d"`
	// TimeoutSeconds bounds connection setup, TLS and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// PipelineConfig configures reconciliation.
type PipelineConfig struct {
	// PresentEventID is the newest event; recency is measured from it.
	PresentEventID int `mapstructure:"present_event_id" default:"190"`
	// RecentWindow is how many events back still count as recent.
	RecentWindow int `mapstructure:"recent_window" default:"3"`
	// MaxCityDistanceKm triggers a warning when a resolved venue lies farther
	// than this from its city's stored coordinates. Zero disables the check.
	MaxCityDistanceKm float64 `mapstructure:"max_city_distance_km" default:"100"`
}

// OutputConfig configures where feature collections are written.
type OutputConfig struct {
	// Dir receives locations_{id}.geojson.
	Dir string `mapstructure:"dir" default:"data"`
	// BucketEnabled mirrors every collection to the storage bucket.
	BucketEnabled bool `mapstructure:"bucket_enabled" default:"false"`
	// Prefix is the object key prefix inside the bucket.
	Prefix string `mapstructure:"prefix" default:"locations"`
}
