package cache

import (
	"context"
	"testing"

	"puzzled-pint-map/core/geocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (map[string]geocode.Location, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).(map[string]geocode.Location)
	return entries, args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, entries map[string]geocode.Location) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

var atlanta = geocode.Location{
	FormattedAddress: "5600 Roswell Rd, Atlanta, GA 30342, USA",
	Latitude:         33.909,
	Longitude:        -84.379,
}

func TestAddressCache_LookupAfterLoad(t *testing.T) {
	store := new(MockStore)
	store.On("Load", mock.Anything).Return(map[string]geocode.Location{
		"5600 Roswell Rd, Atlanta, GA 30342": atlanta,
	}, nil)

	c := New(store, FlushEnd, zap.NewNop())
	require.NoError(t, c.Load(context.Background()))

	loc, ok := c.Lookup("5600 Roswell Rd, Atlanta, GA 30342")
	assert.True(t, ok)
	assert.Equal(t, atlanta, loc)

	_, ok = c.Lookup("1 Main St, Nowhere, 00000")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestAddressCache_LoadError(t *testing.T) {
	store := new(MockStore)
	store.On("Load", mock.Anything).Return(nil, assert.AnError)

	c := New(store, FlushEnd, zap.NewNop())
	err := c.Load(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAddressCache_FlushPolicies(t *testing.T) {
	tests := []struct {
		name          string
		flush         string
		savesOnStore  int
		savesOnFinish int
	}{
		{"FlushAtEnd", FlushEnd, 0, 1},
		{"FlushOnStore", FlushStore, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := new(MockStore)
			store.On("Load", mock.Anything).Return(map[string]geocode.Location{}, nil)
			store.On("Save", mock.Anything, mock.Anything).Return(nil)

			c := New(store, tt.flush, zap.NewNop())
			require.NoError(t, c.Load(ctx))

			require.NoError(t, c.Store(ctx, "5600 Roswell Rd, Atlanta, GA 30342", atlanta))
			store.AssertNumberOfCalls(t, "Save", tt.savesOnStore)

			require.NoError(t, c.Save(ctx))
			store.AssertNumberOfCalls(t, "Save", tt.savesOnStore+tt.savesOnFinish)
		})
	}
}

func TestAddressCache_SaveSkipsWhenClean(t *testing.T) {
	store := new(MockStore)
	store.On("Load", mock.Anything).Return(map[string]geocode.Location{}, nil)

	c := New(store, FlushEnd, zap.NewNop())
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Save(context.Background()))

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddressCache_SaveError(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Load", mock.Anything).Return(map[string]geocode.Location{}, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

	c := New(store, FlushEnd, zap.NewNop())
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Store(ctx, "a", atlanta))

	assert.ErrorIs(t, c.Save(ctx), assert.AnError)
}
