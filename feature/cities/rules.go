package cities

import "strings"

// GroupCity names a child location inside a metro group.
type GroupCity struct {
	Group string
	City  string
}

// MatchRules is the disambiguation table applied when a location from the
// event feed is matched against registry names.
type MatchRules struct {
	// SkipGroups are metro groups whose children appear in the registry under
	// their own name rather than "Group (City)".
	SkipGroups []string
	// Overrides are ambiguous metro names. A search name containing one is
	// replaced by the override itself, which is the canonical registry name.
	Overrides []string
	// ExceptionPairs record event participation even when the location had no
	// street address.
	ExceptionPairs []GroupCity
}

// DefaultMatchRules returns the table the registry has always been matched with.
func DefaultMatchRules() MatchRules {
	return MatchRules{
		SkipGroups: []string{"Bay Area"},
		Overrides:  []string{"Arlington", "Jersey City"},
		ExceptionPairs: []GroupCity{
			{Group: "Bay Area", City: "San Francisco"},
			{Group: "Seattle", City: "City"},
		},
	}
}

// SearchName builds the registry search string for a location.
func (r MatchRules) SearchName(displayName, cityGroup string) string {
	searchName := displayName
	if cityGroup != "" && !contains(r.SkipGroups, cityGroup) {
		searchName = cityGroup + " (" + displayName + ")"
	}
	for _, override := range r.Overrides {
		if strings.Contains(searchName, override) {
			return override
		}
	}
	return searchName
}

// IsException reports whether the pair always records participation.
func (r MatchRules) IsException(cityGroup, displayName string) bool {
	for _, p := range r.ExceptionPairs {
		if p.Group == cityGroup && p.City == displayName {
			return true
		}
	}
	return false
}

// ParsePairs parses "Group/City" entries. Entries without a slash are ignored.
func ParsePairs(entries []string) []GroupCity {
	var pairs []GroupCity
	for _, e := range entries {
		group, city, ok := strings.Cut(e, "/")
		if !ok {
			continue
		}
		pairs = append(pairs, GroupCity{Group: strings.TrimSpace(group), City: strings.TrimSpace(city)})
	}
	return pairs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
