package cities

// Flush policies.
const (
	FlushMutation = "mutation"
	FlushEnd      = "end"
)

// Config holds configuration for the city registry.
type Config struct {
	// Path is the registry JSON document.
	Path string `mapstructure:"path" default:"data/cities.json"`
	// Flush is "mutation" to persist after every change, or "end" to persist once per event.
	Flush string `mapstructure:"flush" default:"mutation"`
	// SkipGroups overrides MatchRules.SkipGroups (comma separated).
	SkipGroups []string `mapstructure:"skip_groups" default:"Bay Area"`
	// Overrides overrides MatchRules.Overrides (comma separated).
	Overrides []string `mapstructure:"overrides" default:"Arlington,Jersey City"`
	// ExceptionPairs overrides MatchRules.ExceptionPairs as "Group/City" entries.
	ExceptionPairs []string `mapstructure:"exception_pairs" default:"Bay Area/San Francisco,Seattle/City"`
}

// Rules builds the match table from the configuration.
func (c Config) Rules() MatchRules {
	return MatchRules{
		SkipGroups:     c.SkipGroups,
		Overrides:      c.Overrides,
		ExceptionPairs: ParsePairs(c.ExceptionPairs),
	}
}
