package cities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) ([]CityRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]CityRecord)
	return records, args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, records []CityRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func newTestRegistry(t *testing.T, flush string, records ...CityRecord) (*Registry, *MockStore) {
	t.Helper()
	store := new(MockStore)
	store.On("Load", mock.Anything).Return(records, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	reg := NewRegistry(store, Options{
		Rules:          DefaultMatchRules(),
		PresentEventID: 190,
		RecentWindow:   3,
		Flush:          flush,
	}, zap.NewNop())
	require.NoError(t, reg.Load(context.Background()))
	return reg, store
}

func TestRegistry_FindFirstSubstringMatch(t *testing.T) {
	reg, _ := newTestRegistry(t, FlushMutation,
		CityRecord{Name: "Seattle"},
		CityRecord{Name: "Seattle - Bellevue"},
	)

	idx, ok := reg.Find("Bellevue")
	require.True(t, ok)
	assert.Equal(t, "Seattle - Bellevue", reg.Records()[idx].Name)

	idx, ok = reg.Find("Seattle")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = reg.Find("Tacoma")
	assert.False(t, ok)
}

func TestRegistry_IsRecent(t *testing.T) {
	reg, _ := newTestRegistry(t, FlushMutation)

	assert.True(t, reg.IsRecent(190))
	assert.True(t, reg.IsRecent(187))
	assert.False(t, reg.IsRecent(186))
	assert.True(t, reg.IsRecent(195))
}

func TestRegistry_Update(t *testing.T) {
	tests := []struct {
		name             string
		record           CityRecord
		displayName      string
		cityGroup        string
		matchedByAddress bool
		eventID          int
		wantStatus       Status
		wantEvents       EventSet
		wantSaves        int
	}{
		{
			name:             "DefunctBecomesActive",
			record:           CityRecord{Name: "Atlanta", Status: StatusDefunct, EventIDs: EventSet{150}},
			displayName:      "Atlanta",
			matchedByAddress: true,
			eventID:          190,
			wantStatus:       StatusActive,
			wantEvents:       EventSet{190, 150},
			wantSaves:        1,
		},
		{
			name:             "OldEventKeepsStatus",
			record:           CityRecord{Name: "Atlanta", Status: StatusDefunct, EventIDs: EventSet{}},
			displayName:      "Atlanta",
			matchedByAddress: true,
			eventID:          150,
			wantStatus:       StatusDefunct,
			wantEvents:       EventSet{150},
			wantSaves:        1,
		},
		{
			name:        "NoAddressRecentIsHiatus",
			record:      CityRecord{Name: "Atlanta", Status: StatusActive, EventIDs: EventSet{189}},
			displayName: "Atlanta",
			eventID:     190,
			wantStatus:  StatusHiatus,
			wantEvents:  EventSet{189},
			wantSaves:   1,
		},
		{
			name:        "NoAddressOldIsUnchanged",
			record:      CityRecord{Name: "Atlanta", Status: StatusActive, EventIDs: EventSet{189}},
			displayName: "Atlanta",
			eventID:     100,
			wantStatus:  StatusActive,
			wantEvents:  EventSet{189},
			wantSaves:   0,
		},
		{
			name:        "ExceptionPairRecordsEvent",
			record:      CityRecord{Name: "San Francisco", Status: StatusHiatus, EventIDs: EventSet{}},
			displayName: "San Francisco",
			cityGroup:   "Bay Area",
			eventID:     189,
			wantStatus:  StatusActive,
			wantEvents:  EventSet{189},
			wantSaves:   1,
		},
		{
			name:             "AlreadyRecordedIsUntouched",
			record:           CityRecord{Name: "Atlanta", Status: StatusHiatus, EventIDs: EventSet{190}},
			displayName:      "Atlanta",
			matchedByAddress: true,
			eventID:          190,
			wantStatus:       StatusHiatus,
			wantEvents:       EventSet{190},
			wantSaves:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, store := newTestRegistry(t, FlushMutation, tt.record)

			rec, err := reg.Update(context.Background(), tt.displayName, tt.matchedByAddress, tt.cityGroup, tt.eventID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Status)
			assert.Equal(t, tt.wantEvents, rec.EventIDs)
			assert.Equal(t, tt.wantEvents, reg.Records()[0].EventIDs)
			store.AssertNumberOfCalls(t, "Save", tt.wantSaves)
		})
	}
}

func TestRegistry_UpdateGroupedLocation(t *testing.T) {
	reg, _ := newTestRegistry(t, FlushMutation,
		CityRecord{Name: "Seattle", Status: StatusActive},
		CityRecord{Name: "Seattle (Bellevue)", Status: StatusDefunct},
	)

	rec, err := reg.Update(context.Background(), "Bellevue", true, "Seattle", 190)
	require.NoError(t, err)
	assert.Equal(t, "Seattle (Bellevue)", rec.Name)
	assert.Equal(t, StatusActive, rec.Status)
	assert.Empty(t, reg.Records()[0].EventIDs)
}

func TestRegistry_UpdateNoMatch(t *testing.T) {
	reg, store := newTestRegistry(t, FlushMutation, CityRecord{Name: "Atlanta"})

	rec, err := reg.Update(context.Background(), "Tacoma", true, "", 190)
	assert.ErrorIs(t, err, ErrNoMatchingCity)
	assert.Nil(t, rec)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegistry_UpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg, store := newTestRegistry(t, FlushMutation, CityRecord{Name: "Atlanta", EventIDs: EventSet{}})

	_, err := reg.Update(ctx, "Atlanta", true, "", 190)
	require.NoError(t, err)
	once := reg.Records()

	_, err = reg.Update(ctx, "Atlanta", true, "", 190)
	require.NoError(t, err)

	assert.Equal(t, once, reg.Records())
	assert.Equal(t, EventSet{190}, reg.Records()[0].EventIDs)
	store.AssertNumberOfCalls(t, "Save", 1)
}

func TestRegistry_FlushAtEnd(t *testing.T) {
	ctx := context.Background()
	reg, store := newTestRegistry(t, FlushEnd,
		CityRecord{Name: "Atlanta"},
		CityRecord{Name: "Boston"},
	)

	_, err := reg.Update(ctx, "Atlanta", true, "", 190)
	require.NoError(t, err)
	_, err = reg.Update(ctx, "Boston", true, "", 190)
	require.NoError(t, err)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	require.NoError(t, reg.Save(ctx))
	store.AssertNumberOfCalls(t, "Save", 1)
}

func TestRegistry_SaveErrorIsReturned(t *testing.T) {
	store := new(MockStore)
	store.On("Load", mock.Anything).Return([]CityRecord{{Name: "Atlanta"}}, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

	reg := NewRegistry(store, Options{Rules: DefaultMatchRules(), PresentEventID: 190}, zap.NewNop())
	require.NoError(t, reg.Load(context.Background()))

	_, err := reg.Update(context.Background(), "Atlanta", true, "", 190)
	assert.ErrorIs(t, err, assert.AnError)
}

type stubExpirer struct {
	fn func([]CityRecord) ([]CityRecord, error)
}

func (s stubExpirer) Expire(ctx context.Context, records []CityRecord, eventID int) ([]CityRecord, error) {
	return s.fn(records)
}

func TestRegistry_Expire(t *testing.T) {
	t.Run("NilExpirerIsNoop", func(t *testing.T) {
		reg, store := newTestRegistry(t, FlushMutation, CityRecord{Name: "Atlanta"})
		require.NoError(t, reg.Expire(context.Background(), nil, 190))
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("StatusChangesAreKept", func(t *testing.T) {
		reg, store := newTestRegistry(t, FlushMutation, CityRecord{Name: "Atlanta", Status: StatusHiatus})
		e := stubExpirer{fn: func(records []CityRecord) ([]CityRecord, error) {
			records[0].Status = StatusDefunct
			return records, nil
		}}

		require.NoError(t, reg.Expire(context.Background(), e, 190))
		assert.Equal(t, StatusDefunct, reg.Records()[0].Status)
		store.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("DroppingCitiesIsRejected", func(t *testing.T) {
		reg, _ := newTestRegistry(t, FlushMutation, CityRecord{Name: "Atlanta"}, CityRecord{Name: "Boston"})
		e := stubExpirer{fn: func(records []CityRecord) ([]CityRecord, error) {
			return records[:1], nil
		}}

		assert.Error(t, reg.Expire(context.Background(), e, 190))
		assert.Len(t, reg.Records(), 2)
	})
}

func TestRegistry_Reset(t *testing.T) {
	reg, store := newTestRegistry(t, FlushMutation,
		CityRecord{Name: "Atlanta", Status: StatusActive, EventIDs: EventSet{190}, RemoteEventIDs: EventSet{150}},
	)

	require.NoError(t, reg.Reset(context.Background()))

	rec := reg.Records()[0]
	assert.Empty(t, rec.EventIDs)
	assert.Empty(t, rec.RemoteEventIDs)
	assert.Equal(t, StatusActive, rec.Status)
	store.AssertNumberOfCalls(t, "Save", 1)
}
