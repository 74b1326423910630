package cities

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"puzzled-pint-map/core/geocode"
	"puzzled-pint-map/core/geocode/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const cityListPage = `<html><body>
<ul>
  <li><a href="/atlanta">Atlanta</a></li>
  <li><a href="/seattle-bellevue"> Seattle - Bellevue </a></li>
  <li><a>No link</a></li>
  <li><a href="/empty"></a></li>
  <li><a href="/nowhere"><b>Nowhere</b></a></li>
</ul>
</body></html>`

func TestParseCityList(t *testing.T) {
	records, err := ParseCityList(strings.NewReader(cityListPage))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Atlanta", records[0].Name)
	assert.Equal(t, "/atlanta", records[0].URL)
	assert.Equal(t, "Seattle - Bellevue", records[1].Name)
	assert.Equal(t, "Nowhere", records[2].Name)
	for _, rec := range records {
		assert.Equal(t, StatusDefunct, rec.Status)
		assert.Empty(t, rec.EventIDs)
		assert.Nil(t, rec.Coordinates)
	}
}

type stubPrompt struct {
	point *geocode.Point
	asked []string
}

func (s *stubPrompt) Coordinates(name string) (*geocode.Point, error) {
	s.asked = append(s.asked, name)
	return s.point, nil
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()
	gw := new(mocks.Gateway)
	gw.On("Geocode", mock.Anything, "Atlanta").Return(&geocode.Location{Latitude: 33.749, Longitude: -84.388}, nil)
	gw.On("Geocode", mock.Anything, "Seattle - Bellevue").Return(&geocode.Location{Latitude: 47.61, Longitude: -122.2}, nil)
	gw.On("Geocode", mock.Anything, "Nowhere").Return(nil, geocode.ErrNotFound)

	t.Run("PromptFillsMissingCoordinates", func(t *testing.T) {
		prompt := &stubPrompt{point: &geocode.Point{Latitude: 1, Longitude: 2}}
		imp := NewImporter(gw, prompt, zap.NewNop())

		records, err := imp.Import(ctx, strings.NewReader(cityListPage))
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, &geocode.Point{Latitude: 33.749, Longitude: -84.388}, records[0].Coordinates)
		assert.Equal(t, &geocode.Point{Latitude: 1, Longitude: 2}, records[2].Coordinates)
		assert.Equal(t, []string{"Nowhere"}, prompt.asked)
	})

	t.Run("UnattendedLeavesCoordinatesEmpty", func(t *testing.T) {
		imp := NewImporter(gw, nil, zap.NewNop())

		records, err := imp.Import(ctx, strings.NewReader(cityListPage))
		require.NoError(t, err)
		assert.NotNil(t, records[1].Coordinates)
		assert.Nil(t, records[2].Coordinates)
	})
}

func TestImporter_ProviderFailureAborts(t *testing.T) {
	gw := new(mocks.Gateway)
	gw.On("Geocode", mock.Anything, "Atlanta").Return(nil, assert.AnError)

	imp := NewImporter(gw, nil, zap.NewNop())
	_, err := imp.Import(context.Background(), strings.NewReader(`<a href="/atlanta">Atlanta</a>`))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestReaderPrompt_Coordinates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *geocode.Point
		wantErr bool
	}{
		{name: "Valid", input: "47.6, -122.3\n", want: &geocode.Point{Latitude: 47.6, Longitude: -122.3}},
		{name: "NoTrailingNewline", input: "10,20", want: &geocode.Point{Latitude: 10, Longitude: 20}},
		{name: "BlankSkips", input: "\n"},
		{name: "EOFSkips", input: ""},
		{name: "Garbage", input: "somewhere\n", wantErr: true},
		{name: "NotNumbers", input: "a,b\n", wantErr: true},
		{name: "OutOfRange", input: "120,10\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewReaderPrompt(strings.NewReader(tt.input), &out)

			got, err := p.Coordinates("Nowhere")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Could not find location for Nowhere")
		})
	}
}
