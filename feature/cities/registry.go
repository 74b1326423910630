package cities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNoMatchingCity is returned when no registry name contains the search name.
var ErrNoMatchingCity = errors.New("cities: no matching city")

// DefaultRecentWindow is how many events back still count as recent.
const DefaultRecentWindow = 3

// Store persists the registry document.
type Store interface {
	Load(ctx context.Context) ([]CityRecord, error)
	Save(ctx context.Context, records []CityRecord) error
}

// Expirer is the extension point for downgrading cities that stopped showing
// up. The registry never does this on its own; see Registry.Expire.
type Expirer interface {
	Expire(ctx context.Context, records []CityRecord, eventID int) ([]CityRecord, error)
}

// Options configures a Registry.
type Options struct {
	Rules          MatchRules
	PresentEventID int
	RecentWindow   int
	Flush          string
}

// Registry is the ordered, in-memory city registry. It is loaded once and
// mutated in place; persistence follows the configured flush policy.
type Registry struct {
	store           Store
	rules           MatchRules
	presentEventID  int
	recentWindow    int
	flushOnMutation bool
	records         []CityRecord
	dirty           bool
	logger          *zap.Logger
}

// NewRegistry creates an empty registry bound to a store. Call Load before use.
func NewRegistry(store Store, opts Options, logger *zap.Logger) *Registry {
	window := opts.RecentWindow
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &Registry{
		store:           store,
		rules:           opts.Rules,
		presentEventID:  opts.PresentEventID,
		recentWindow:    window,
		flushOnMutation: opts.Flush != FlushEnd,
		logger:          logger,
	}
}

// Load reads the registry from its store.
func (r *Registry) Load(ctx context.Context) error {
	records, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("cities: failed to load registry: %w", err)
	}
	r.records = records
	r.dirty = false
	r.logger.Debug("Loaded city registry", zap.Int("cities", len(records)))
	return nil
}

// Records returns a copy of the registry in order.
func (r *Registry) Records() []CityRecord {
	out := make([]CityRecord, len(r.records))
	copy(out, r.records)
	return out
}

// IsRecent reports whether eventID is within the recent window of the present event.
func (r *Registry) IsRecent(eventID int) bool {
	return r.presentEventID-eventID <= r.recentWindow
}

// Find returns the index of the first record whose name contains searchName.
func (r *Registry) Find(searchName string) (int, bool) {
	for i, rec := range r.records {
		if strings.Contains(rec.Name, searchName) {
			return i, true
		}
	}
	return -1, false
}

// Update matches a location from the event feed against the registry and
// records its participation in eventID. It returns a copy of the matched
// record, or ErrNoMatchingCity.
//
// Re-running an event that is already recorded leaves the record untouched.
func (r *Registry) Update(ctx context.Context, displayName string, matchedByAddress bool, cityGroup string, eventID int) (*CityRecord, error) {
	searchName := r.rules.SearchName(displayName, cityGroup)
	idx, ok := r.Find(searchName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMatchingCity, searchName)
	}

	rec := &r.records[idx]
	if rec.EventIDs.Has(eventID) {
		out := *rec
		return &out, nil
	}

	recent := r.IsRecent(eventID)
	changed := false

	if matchedByAddress || r.rules.IsException(cityGroup, displayName) {
		rec.EventIDs = rec.EventIDs.Add(eventID)
		changed = true
		if recent && rec.Status != StatusActive {
			rec.Status = StatusActive
		}
	} else if recent && rec.Status != StatusHiatus {
		rec.Status = StatusHiatus
		changed = true
	}

	r.logger.Debug("Updated city",
		zap.String("city", rec.Name),
		zap.String("search_name", searchName),
		zap.Bool("matched_by_address", matchedByAddress),
		zap.Bool("recent", recent),
		zap.String("status", string(rec.Status)),
	)

	out := *rec
	if changed {
		if err := r.markDirty(ctx); err != nil {
			return &out, err
		}
	}
	return &out, nil
}

// Expire hands the registry to an Expirer and keeps its result.
// An Expirer may change statuses but never drop cities.
func (r *Registry) Expire(ctx context.Context, e Expirer, eventID int) error {
	if e == nil {
		return nil
	}
	records, err := e.Expire(ctx, r.Records(), eventID)
	if err != nil {
		return fmt.Errorf("cities: expiry failed: %w", err)
	}
	if len(records) != len(r.records) {
		return fmt.Errorf("cities: expiry changed the number of cities from %d to %d", len(r.records), len(records))
	}
	r.records = records
	return r.markDirty(ctx)
}

// Replace swaps in a new set of records, e.g. after a city list import.
func (r *Registry) Replace(ctx context.Context, records []CityRecord) error {
	r.records = records
	r.dirty = true
	return r.Save(ctx)
}

// Reset clears the event participation of every city.
func (r *Registry) Reset(ctx context.Context) error {
	for i := range r.records {
		r.records[i].EventIDs = EventSet{}
		r.records[i].RemoteEventIDs = EventSet{}
	}
	r.dirty = true
	return r.Save(ctx)
}

// Save persists the registry if it changed.
func (r *Registry) Save(ctx context.Context) error {
	if !r.dirty {
		return nil
	}
	if err := r.store.Save(ctx, r.records); err != nil {
		return fmt.Errorf("cities: failed to save registry: %w", err)
	}
	r.dirty = false
	return nil
}

func (r *Registry) markDirty(ctx context.Context) error {
	r.dirty = true
	if r.flushOnMutation {
		return r.Save(ctx)
	}
	return nil
}
