package geocode

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/golang/geo/s2"
)

// ErrNotFound is returned by a Gateway when the provider has no result for the
// text. It is a soft failure: callers fall back or skip, they never abort.
var ErrNotFound = errors.New("geocode: address not found")

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.01

// Gateway resolves free text to a location.
// Any error other than ErrNotFound means the provider could not be reached or
// refused the request and must be treated as fatal for the run.
type Gateway interface {
	Geocode(ctx context.Context, text string) (*Location, error)
}

// Location is a resolved address.
type Location struct {
	FormattedAddress string  `json:"formatted_address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Successful reports whether the provider matched a street-level address.
// A street match echoes the house number back; a city-only match has no digits.
func (l Location) Successful() bool {
	return strings.IndexFunc(l.FormattedAddress, unicode.IsDigit) >= 0
}

// Point returns the coordinates of the location.
func (l Location) Point() Point {
	return Point{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within the normal degree ranges.
func (p Point) Valid() bool {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude).IsValid()
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	angle := s2.LatLngFromDegrees(a.Latitude, a.Longitude).Distance(s2.LatLngFromDegrees(b.Latitude, b.Longitude))
	return angle.Radians() * earthRadiusKm
}
