package cities

import (
	"encoding/json"
	"sort"

	"puzzled-pint-map/core/geocode"
)

// Status is the lifecycle state of a city.
type Status string

const (
	StatusActive  Status = "active"
	StatusHiatus  Status = "hiatus"
	StatusDefunct Status = "defunct"
)

// CityRecord is one entry of the city registry.
type CityRecord struct {
	// Name is the display name from the city list, e.g. "Seattle - Bellevue".
	Name string `json:"name"`
	// URL links to the city's page.
	URL string `json:"url"`
	// Status is recomputed from recent event participation.
	Status Status `json:"status"`
	// Coordinates were geocoded from the name when the city list was imported.
	Coordinates *geocode.Point `json:"coordinates,omitempty"`
	// EventIDs are the events the city took part in.
	EventIDs EventSet `json:"event_ids"`
	// RemoteEventIDs are events the city hosted remotely. Carried, never computed.
	RemoteEventIDs EventSet `json:"remote_event_ids"`
}

// EventSet is a set of event ids kept sorted in descending order without duplicates.
type EventSet []int

// Has reports whether id is in the set.
func (s EventSet) Has(id int) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id included.
func (s EventSet) Add(id int) EventSet {
	if s.Has(id) {
		return s
	}
	out := make(EventSet, len(s), len(s)+1)
	copy(out, s)
	return normalize(append(out, id))
}

// MarshalJSON always writes a descending array, [] when empty.
func (s EventSet) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(normalize(append(EventSet(nil), s...))))
}

// UnmarshalJSON accepts any order and duplicates.
func (s *EventSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = normalize(ids)
	return nil
}

func normalize(ids []int) EventSet {
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	out := EventSet{}
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}
