package cities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSet_Add(t *testing.T) {
	s := EventSet{190, 185}

	s = s.Add(188)
	assert.Equal(t, EventSet{190, 188, 185}, s)

	s = s.Add(190)
	assert.Equal(t, EventSet{190, 188, 185}, s)

	assert.Equal(t, EventSet{7}, EventSet(nil).Add(7))
}

func TestEventSet_AddDoesNotAlias(t *testing.T) {
	base := make(EventSet, 2, 10)
	base[0], base[1] = 190, 185

	added := base.Add(200)
	assert.Equal(t, EventSet{190, 185}, base)
	assert.Equal(t, EventSet{200, 190, 185}, added)
}

func TestEventSet_JSON(t *testing.T) {
	var s EventSet
	require.NoError(t, json.Unmarshal([]byte(`[185, 190, 185, 188]`), &s))
	assert.Equal(t, EventSet{190, 188, 185}, s)

	data, err := json.Marshal(EventSet{185, 190})
	require.NoError(t, err)
	assert.JSONEq(t, `[190, 185]`, string(data))

	data, err = json.Marshal(EventSet(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestCityRecord_JSON(t *testing.T) {
	raw := `{"name":"Atlanta","url":"/atlanta","status":"defunct","coordinates":{"latitude":33.7,"longitude":-84.4},"event_ids":[],"remote_event_ids":[]}`

	var rec CityRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, "Atlanta", rec.Name)
	assert.Equal(t, StatusDefunct, rec.Status)
	require.NotNil(t, rec.Coordinates)
	assert.InDelta(t, 33.7, rec.Coordinates.Latitude, 1e-9)

	rec.Coordinates = nil
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "coordinates")
	assert.Contains(t, string(data), `"event_ids":[]`)
}
