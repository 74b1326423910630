package locations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"puzzled-pint-map/core/utils"
)

// EventSnapshot is the location list of one event.
type EventSnapshot struct {
	Locations []CityInfo `json:"locations"`
}

// CityInfo is a node of the location tree. A node with child locations is a
// metro group; otherwise it is a venue, optionally with a street address.
type CityInfo struct {
	City      string
	Locations []CityInfo
	Address   *AddressQuery
	Bar       *string
	BarURL    *string
	StartTime *string
	StopTime  *string
	Notes     *string
}

// IsGroup reports whether the node has child locations.
func (c CityInfo) IsGroup() bool {
	return len(c.Locations) > 0
}

// UnmarshalJSON tolerates numbers and nulls where strings are expected.
func (c *CityInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		City      any             `json:"city"`
		Locations []CityInfo      `json:"locations"`
		Address   json.RawMessage `json:"address"`
		Bar       any             `json:"bar"`
		BarURL    any             `json:"bar_url"`
		StartTime any             `json:"start_time"`
		StopTime  any             `json:"stop_time"`
		Notes     any             `json:"notes"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*c = CityInfo{
		City:      utils.ToString(raw.City),
		Locations: raw.Locations,
		Bar:       utils.ToOptionalString(raw.Bar),
		BarURL:    utils.ToOptionalString(raw.BarURL),
		StartTime: utils.ToOptionalString(raw.StartTime),
		StopTime:  utils.ToOptionalString(raw.StopTime),
		Notes:     utils.ToOptionalString(raw.Notes),
	}

	// The feed sends null, "" or {} for venues without an address.
	if trimmed := bytes.TrimSpace(raw.Address); len(trimmed) > 0 && trimmed[0] == '{' {
		var addr AddressQuery
		if err := json.Unmarshal(trimmed, &addr); err != nil {
			return fmt.Errorf("address of %q: %w", c.City, err)
		}
		if addr != (AddressQuery{}) {
			c.Address = &addr
		}
	}
	return nil
}

// AddressQuery is a venue address as published by the event feed.
type AddressQuery struct {
	Street1    string
	Street2    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// UnmarshalJSON coerces every field to a string, e.g. postal_code: 30342.
func (a *AddressQuery) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*a = AddressQuery{
		Street1:    utils.ToString(raw["street_1"]),
		Street2:    utils.ToString(raw["street_2"]),
		City:       utils.ToString(raw["city"]),
		State:      utils.ToString(raw["state"]),
		PostalCode: utils.ToString(raw["postal_code"]),
		Country:    utils.ToString(raw["country"]),
	}
	return nil
}

// FullAddress is the normalized address used as the cache key and geocoding
// query: "{street_1}, {city}, {state }{postal_code}". Street line 2 and the
// country are not part of it.
func (a AddressQuery) FullAddress() string {
	var b strings.Builder
	b.WriteString(a.Street1)
	b.WriteString(", ")
	b.WriteString(a.City)
	b.WriteString(", ")
	if a.State != "" {
		b.WriteString(a.State)
		b.WriteString(" ")
	}
	b.WriteString(a.PostalCode)
	return b.String()
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeatureCollection returns an empty collection that encodes "features": [].
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// Feature is a GeoJSON point feature for one venue.
type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties describe the venue.
type Properties struct {
	Name              string  `json:"name"`
	Bar               *string `json:"bar"`
	BarURL            *string `json:"bar_url"`
	Address           *string `json:"address"`
	SuccessfulGeocode bool    `json:"successful_geocode"`
	StartTime         *string `json:"start_time"`
	StopTime          *string `json:"stop_time"`
	Notes             *string `json:"notes"`
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPointGeometry builds a point geometry from latitude and longitude.
func NewPointGeometry(latitude, longitude float64) Geometry {
	return Geometry{Type: "Point", Coordinates: [2]float64{longitude, latitude}}
}
