// Package geocode is the boundary to the external address-to-coordinate provider.
//
// The Gateway interface has a deliberately small contract: a provider that has
// no answer returns ErrNotFound, anything else that goes wrong (timeouts, quota,
// a rejected key) is returned as an ordinary error and aborts the run, so a
// flaky network can never be recorded in the address cache as "not found".
//
// GoogleGateway implements it on top of googlemaps.github.io/maps. The package
// also carries the small Point type shared by the city registry and the s2
// great-circle helpers used to sanity-check geocoded points.
package geocode
