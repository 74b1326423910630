package config

import (
	"reflect"
	"strings"

	"puzzled-pint-map/core/database"
	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/core/logger"
	"puzzled-pint-map/core/storage"
	"puzzled-pint-map/feature/cache"
	"puzzled-pint-map/feature/cities"
	"puzzled-pint-map/feature/locations"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Geocode holds configuration for the geocoding provider.
	Geocode geocode.Config `mapstructure:"geocode"`
	// Events holds configuration for the event location feed.
	Events locations.SourceConfig `mapstructure:"events"`
	// Cache holds configuration for the address cache.
	Cache cache.Config `mapstructure:"cache"`
	// Registry holds configuration for the city registry document.
	Registry cities.Config `mapstructure:"registry"`
	// Pipeline holds the reconciliation settings.
	Pipeline locations.PipelineConfig `mapstructure:"pipeline"`
	// Output holds configuration for the generated feature collections.
	Output locations.OutputConfig `mapstructure:"output"`
	// Storage holds configuration for the object storage mirror (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the database used by the cache backend.
	Database database.Config `mapstructure:"database"`
}

// envAliases maps conventional environment variable names onto config keys.
var envAliases = map[string]string{
	"geocode.google_api_key": "GOOGLE_API_KEY",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CACHE_PATH -> cache.path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envAliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
