package geocode

// Config holds configuration for the geocoding provider.
type Config struct {
	// GoogleAPIKey authenticates against the Google Geocoding API.
	// GOOGLE_API_KEY is accepted as well as GEOCODE_GOOGLE_API_KEY.
	GoogleAPIKey string `mapstructure:"google_api_key" default:""`
	// Region biases results towards a ccTLD region code (e.g. "us").
	Region string `mapstructure:"region" default:""`
	// BaseURL overrides the API host, used against local stubs.
	BaseURL string `mapstructure:"base_url" default:""`
	// TimeoutSeconds bounds a single geocoding request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RequestsPerSecond throttles calls to the provider.
	RequestsPerSecond int `mapstructure:"requests_per_second" default:"10"`
}
