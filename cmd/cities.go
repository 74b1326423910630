package cmd

import (
	"fmt"
	"os"

	"puzzled-pint-map/core/config"
	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/core/logger"
	"puzzled-pint-map/feature/cities"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var noPrompt bool

// citiesCmd is the parent command for registry maintenance.
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Maintain the city registry",
}

// citiesImportCmd builds the registry from the saved city list page.
var citiesImportCmd = &cobra.Command{
	Use:   "import <city-list.html>",
	Short: "Create the city registry from the city list page",
	Long: `Parses every link of the city list page into a city, geocodes its name
and overwrites the registry (the previous one is kept as a .bak file).

Cities the provider cannot find are asked for on stdin as "lat,lon"; an empty
answer leaves the city without coordinates. Use --no-prompt to skip asking.`,
	Args: cobra.ExactArgs(1),
	RunE: runCitiesImport,
}

// citiesResetCmd clears the event participation of every city.
var citiesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear event ids of every city",
	Args:  cobra.NoArgs,
	RunE:  runCitiesReset,
}

func init() {
	citiesImportCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Do not ask for coordinates the provider cannot find")

	citiesCmd.AddCommand(citiesImportCmd)
	citiesCmd.AddCommand(citiesResetCmd)
	RootCmd.AddCommand(citiesCmd)
}

func runCitiesImport(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

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

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open city list: %w", err)
	}
	defer f.Close()

	var prompt cities.CoordinatePrompt
	if !noPrompt {
		prompt = cities.NewReaderPrompt(os.Stdin, os.Stdout)
	}

	records, err := cities.NewImporter(gateway, prompt, l).Import(ctx, f)
	if err != nil {
		return err
	}

	registry := cities.NewRegistry(cities.NewFileStore(cfg.Registry.Path), cities.Options{
		Rules: cfg.Registry.Rules(),
	}, l)
	if err := registry.Replace(ctx, records); err != nil {
		return err
	}

	missing := 0
	for _, rec := range records {
		if rec.Coordinates == nil {
			missing++
		}
	}
	l.Info("City registry imported",
		zap.String("path", cfg.Registry.Path),
		zap.Int("cities", len(records)),
		zap.Int("without_coordinates", missing),
	)
	return nil
}

func runCitiesReset(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	registry, err := openRegistry(ctx, cfg, l)
	if err != nil {
		return err
	}
	if err := registry.Reset(ctx); err != nil {
		return err
	}

	l.Info("City registry reset", zap.String("path", cfg.Registry.Path), zap.Int("cities", len(registry.Records())))
	return nil
}
