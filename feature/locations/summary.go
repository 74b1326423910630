package locations

// RunSummary counts what happened while processing one event.
type RunSummary struct {
	EventID int
	RunID   string
	// Leaves is the number of venue nodes visited.
	Leaves int
	// Features is the number of features emitted.
	Features int
	// CacheHits counts addresses answered by the cache.
	CacheHits int
	// GatewayCalls counts requests sent to the geocoding provider.
	GatewayCalls int
	// CityFallbacks counts addresses resolved by their city alone.
	CityFallbacks int
	// UnmatchedCities counts venues with no registry entry.
	UnmatchedCities int
	// Skipped counts venues that produced no feature.
	Skipped int
	// Published is where the collection was written, empty when it was not.
	Published []string
}
