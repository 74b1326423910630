package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"puzzled-pint-map/core/config"
	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/core/logger"
	"puzzled-pint-map/core/storage"
	"puzzled-pint-map/feature/cache"
	"puzzled-pint-map/feature/cities"
	"puzzled-pint-map/feature/locations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// locationsCmd builds the feature collections for a range of events.
var locationsCmd = &cobra.Command{
	Use:   "locations <start-event-id> [end-event-id]",
	Short: "Geocode event locations and update the city registry",
	Long: `Fetches the location list of each event in the inclusive range, resolves
every venue address (address cache first, then the geocoding provider), updates
the city registry and writes data/locations_{id}.geojson.

Examples:
  # A single event
  locations 190

  # Back-fill a range
  locations 150 190`,
	Args: eventRangeArgs,
	RunE: runLocations,
}

func init() {
	RootCmd.AddCommand(locationsCmd)
}

// eventRangeArgs rejects anything but one or two event ids.
func eventRangeArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: %s", cmd.UseLine())
	}
	_, _, err := parseEventRange(args)
	return err
}

func parseEventRange(args []string) (int, int, error) {
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start event id %q: %w", args[0], err)
	}
	end := start
	if len(args) == 2 {
		end, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end event id %q: %w", args[1], err)
		}
	}
	if end < start {
		return 0, 0, fmt.Errorf("end event id %d is before start event id %d", end, start)
	}
	return start, end, nil
}

func runLocations(cmd *cobra.Command, args []string) error {
	start, end, err := parseEventRange(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	gateway, err := geocode.NewGoogleGateway(cfg.Geocode, l)
	if err != nil {
		return err
	}

	addresses, err := cache.Open(ctx, cfg.Cache, cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to open address cache: %w", err)
	}

	registry, err := openRegistry(ctx, cfg, l)
	if err != nil {
		return err
	}

	publisher := locations.NewArtifactPublisher(cfg.Output.Dir, l)
	if cfg.Output.BucketEnabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		publisher.WithBucket(client, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Output.Prefix)
	}

	pipeline := locations.NewPipeline(addresses, gateway, registry, l,
		locations.WithMaxCityDistance(cfg.Pipeline.MaxCityDistanceKm),
	)
	runner := locations.NewRunner(locations.NewHTTPSource(cfg.Events), pipeline, publisher, l)

	l.Info("Starting location run", zap.Int("start", start), zap.Int("end", end))
	summaries, err := runner.RunRange(ctx, start, end)
	for _, s := range summaries {
		printRunSummary(l, s)
	}
	if err != nil {
		return err
	}

	l.Info("Location run complete", zap.Int("events", len(summaries)))
	return nil
}

func openRegistry(ctx context.Context, cfg *config.Config, l *zap.Logger) (*cities.Registry, error) {
	registry := cities.NewRegistry(cities.NewFileStore(cfg.Registry.Path), cities.Options{
		Rules:          cfg.Registry.Rules(),
		PresentEventID: cfg.Pipeline.PresentEventID,
		RecentWindow:   cfg.Pipeline.RecentWindow,
		Flush:          cfg.Registry.Flush,
	}, l)
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}
	return registry, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printRunSummary prints the counters of one event using logger.
func printRunSummary(l *zap.Logger, s locations.RunSummary) {
	l.Info("Event report",
		zap.Int("event_id", s.EventID),
		zap.String("run_id", s.RunID),
		zap.Int("locations", s.Leaves),
		zap.Int("features", s.Features),
		zap.Int("cache_hits", s.CacheHits),
		zap.Int("gateway_calls", s.GatewayCalls),
		zap.Int("city_fallbacks", s.CityFallbacks),
		zap.Int("unmatched_cities", s.UnmatchedCities),
		zap.Int("skipped", s.Skipped),
	)
	for _, p := range s.Published {
		l.Info("Published", zap.Int("event_id", s.EventID), zap.String("location", p))
	}
}
