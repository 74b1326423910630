// Package cities implements the city registry.
//
// The registry is the ordered list of known cities from the event's city list
// page, each with a lifecycle status (active, hiatus, defunct) and the set of
// events it took part in. It is created once by importing the city list and
// afterwards only touched by the locations pipeline through Registry.Update.
//
// # Matching
//
// Locations from the event feed are matched by substring against registry
// names, first match wins in registry order. Grouped locations are searched as
// "Group (City)" unless the group is listed in MatchRules.SkipGroups, and a
// short list of ambiguous metro names (MatchRules.Overrides) is collapsed onto
// its canonical entry. MatchRules.ExceptionPairs record participation even for
// locations that came without a street address.
//
// # Status
//
// An event within the recent window of the present event marks a city active
// when it was matched by address, hiatus otherwise. Nothing downgrades a city
// to defunct automatically; an Expirer can be plugged in for that.
//
// # Persistence
//
// FileStore writes the registry as a JSON array and copies the previous
// document to "<path>.bak" before each overwrite. By default the registry is
// persisted after every mutation (REGISTRY_FLUSH=mutation).
package cities
