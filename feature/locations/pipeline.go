package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/feature/cities"

	"go.uber.org/zap"
)

// ErrMalformedNode marks a location node that is both a group and a venue.
// The address of such a node is ignored and processing continues.
var ErrMalformedNode = errors.New("locations: node has both child locations and an address")

// AddressCache is the part of the address cache the pipeline needs.
type AddressCache interface {
	Lookup(fullAddress string) (geocode.Location, bool)
	Store(ctx context.Context, fullAddress string, loc geocode.Location) error
	Save(ctx context.Context) error
}

// CityRegistry is the part of the city registry the pipeline needs.
type CityRegistry interface {
	Update(ctx context.Context, displayName string, matchedByAddress bool, cityGroup string, eventID int) (*cities.CityRecord, error)
	Expire(ctx context.Context, e cities.Expirer, eventID int) error
	Save(ctx context.Context) error
}

// Pipeline resolves the venues of an event and reconciles them with the
// city registry.
type Pipeline struct {
	cache         AddressCache
	gateway       geocode.Gateway
	registry      CityRegistry
	expirer       cities.Expirer
	maxDistanceKm float64
	logger        *zap.Logger
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithExpirer runs e against the registry after every event.
func WithExpirer(e cities.Expirer) PipelineOption {
	return func(p *Pipeline) { p.expirer = e }
}

// WithMaxCityDistance sets the distance warning threshold. Zero disables it.
func WithMaxCityDistance(km float64) PipelineOption {
	return func(p *Pipeline) { p.maxDistanceKm = km }
}

// NewPipeline wires a pipeline.
func NewPipeline(cache AddressCache, gateway geocode.Gateway, registry CityRegistry, logger *zap.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		cache:    cache,
		gateway:  gateway,
		registry: registry,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithLogger returns a copy of the pipeline that logs to l.
func (p *Pipeline) WithLogger(l *zap.Logger) *Pipeline {
	cp := *p
	cp.logger = l
	return &cp
}

// Result is the outcome of one event.
type Result struct {
	Collection *FeatureCollection
	Summary    RunSummary
}

func newResult(eventID int) *Result {
	return &Result{
		Collection: NewFeatureCollection(),
		Summary:    RunSummary{EventID: eventID},
	}
}

// Run processes every top-level location of the snapshot.
//
// The address cache and the registry are flushed even when the run fails, so
// resolutions paid for are never lost. On failure no result is returned.
func (p *Pipeline) Run(ctx context.Context, snapshot *EventSnapshot, eventID int) (res *Result, err error) {
	defer func() {
		flushCtx := context.WithoutCancel(ctx)
		if saveErr := p.cache.Save(flushCtx); saveErr != nil {
			err = errors.Join(err, saveErr)
		}
		if saveErr := p.registry.Save(flushCtx); saveErr != nil {
			err = errors.Join(err, saveErr)
		}
		if err != nil {
			res = nil
		}
	}()

	res = newResult(eventID)
	for _, info := range snapshot.Locations {
		if err := p.Process(ctx, info, eventID, "", res); err != nil {
			return nil, err
		}
	}

	if err := p.registry.Expire(ctx, p.expirer, eventID); err != nil {
		return nil, err
	}

	return res, nil
}

// Process handles one node of the location tree, recursing into groups.
// Features and counters are accumulated into res.
func (p *Pipeline) Process(ctx context.Context, info CityInfo, eventID int, cityGroup string, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := strings.TrimSpace(info.City)

	if info.IsGroup() {
		p.logger.Debug("Processing city group", zap.String("group", name))
		for _, child := range info.Locations {
			if err := p.Process(ctx, child, eventID, name, res); err != nil {
				return err
			}
		}
		if info.Address != nil {
			p.logger.Warn("Ignoring address of city group", zap.String("group", name), zap.Error(ErrMalformedNode))
		}
		return nil
	}

	res.Summary.Leaves++
	p.logger.Info("Processing city", zap.String("city", name), zap.String("group", cityGroup))

	if info.Address == nil {
		return p.processWithoutAddress(ctx, info, name, eventID, cityGroup, res)
	}
	return p.processWithAddress(ctx, info, name, eventID, cityGroup, res)
}

func (p *Pipeline) processWithAddress(ctx context.Context, info CityInfo, name string, eventID int, cityGroup string, res *Result) error {
	fullAddress := info.Address.FullAddress()

	loc, err := p.resolve(ctx, info.Address, fullAddress, res)
	if errors.Is(err, geocode.ErrNotFound) {
		p.logger.Warn("Could not find location for city", zap.String("city", name), zap.String("address", fullAddress))
		res.Summary.Skipped++
		return nil
	}
	if err != nil {
		return err
	}

	rec, err := p.updateCity(ctx, name, true, cityGroup, eventID, res)
	if err != nil {
		return err
	}
	if rec != nil {
		p.checkDistance(rec, loc, name)
	}

	address := fullAddress
	p.emit(res, info, name, cityGroup, &address, loc.Successful(), loc.Point())
	return nil
}

func (p *Pipeline) processWithoutAddress(ctx context.Context, info CityInfo, name string, eventID int, cityGroup string, res *Result) error {
	p.logger.Warn("No address for city", zap.String("city", name))

	rec, err := p.updateCity(ctx, name, false, cityGroup, eventID, res)
	if err != nil {
		return err
	}
	if rec == nil {
		res.Summary.Skipped++
		return nil
	}
	if rec.Coordinates == nil {
		p.logger.Warn("City has no stored coordinates", zap.String("city", rec.Name))
		res.Summary.Skipped++
		return nil
	}

	p.emit(res, info, name, cityGroup, nil, false, *rec.Coordinates)
	return nil
}

// resolve answers from the cache, then the full address, then the city alone.
// Whatever resolved is cached under the full address.
func (p *Pipeline) resolve(ctx context.Context, addr *AddressQuery, fullAddress string, res *Result) (geocode.Location, error) {
	if loc, ok := p.cache.Lookup(fullAddress); ok {
		p.logger.Debug("Using cached address", zap.String("address", fullAddress))
		res.Summary.CacheHits++
		return loc, nil
	}

	res.Summary.GatewayCalls++
	found, err := p.gateway.Geocode(ctx, fullAddress)
	if errors.Is(err, geocode.ErrNotFound) {
		p.logger.Warn("Could not geocode address, geocoding the city instead",
			zap.String("address", fullAddress),
			zap.String("city", addr.City),
		)
		res.Summary.GatewayCalls++
		found, err = p.gateway.Geocode(ctx, addr.City)
		if err == nil {
			res.Summary.CityFallbacks++
		}
	}
	if err != nil {
		return geocode.Location{}, err
	}

	p.logger.Info("Found location",
		zap.String("address", fullAddress),
		zap.String("formatted_address", found.FormattedAddress),
	)
	if err := p.cache.Store(ctx, fullAddress, *found); err != nil {
		return geocode.Location{}, err
	}
	return *found, nil
}

// updateCity returns nil without error when no registry entry matches.
func (p *Pipeline) updateCity(ctx context.Context, name string, matchedByAddress bool, cityGroup string, eventID int, res *Result) (*cities.CityRecord, error) {
	rec, err := p.registry.Update(ctx, name, matchedByAddress, cityGroup, eventID)
	if errors.Is(err, cities.ErrNoMatchingCity) {
		p.logger.Warn("Could not find matching city", zap.String("city", name), zap.String("group", cityGroup))
		res.Summary.UnmatchedCities++
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locations: failed to update city %q: %w", name, err)
	}
	return rec, nil
}

func (p *Pipeline) checkDistance(rec *cities.CityRecord, loc geocode.Location, name string) {
	if p.maxDistanceKm <= 0 || rec.Coordinates == nil {
		return
	}
	distance := geocode.DistanceKm(*rec.Coordinates, loc.Point())
	if distance > p.maxDistanceKm {
		p.logger.Warn("Resolved location is far from its city",
			zap.String("city", name),
			zap.String("registry_city", rec.Name),
			zap.Float64("distance_km", distance),
		)
	}
}

func (p *Pipeline) emit(res *Result, info CityInfo, name, cityGroup string, address *string, successful bool, at geocode.Point) {
	featureName := name
	if cityGroup != "" {
		featureName = cityGroup + " - " + name
	}

	res.Collection.Features = append(res.Collection.Features, Feature{
		Type: "Feature",
		Properties: Properties{
			Name:              featureName,
			Bar:               info.Bar,
			BarURL:            info.BarURL,
			Address:           address,
			SuccessfulGeocode: successful,
			StartTime:         info.StartTime,
			StopTime:          info.StopTime,
			Notes:             info.Notes,
		},
		Geometry: NewPointGeometry(at.Latitude, at.Longitude),
	})
	res.Summary.Features++
}
