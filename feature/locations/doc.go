// Package locations turns the published location list of an event into a
// GeoJSON feature collection and keeps the city registry in step with it.
//
// A Runner fetches the snapshot from a Source, hands it to the Pipeline and
// writes the result through a Publisher. The Pipeline walks the location tree:
// groups are recursed into, venues with an address are resolved through the
// address cache (falling back to the geocoding provider, then to the city name
// alone) and every venue is matched against the city registry.
//
// Provider "not found" answers and unmatched cities are logged and skipped.
// Any other provider or persistence error aborts the event; the address cache
// and the registry are still flushed, but no feature collection is written.
package locations
