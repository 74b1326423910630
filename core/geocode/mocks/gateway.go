package mocks

import (
	"context"

	"puzzled-pint-map/core/geocode"

	"github.com/stretchr/testify/mock"
)

// Gateway is a mock implementation of geocode.Gateway
type Gateway struct {
	mock.Mock
}

func (m *Gateway) Geocode(ctx context.Context, text string) (*geocode.Location, error) {
	args := m.Called(ctx, text)
	if loc, ok := args.Get(0).(*geocode.Location); ok {
		return loc, args.Error(1)
	}
	return nil, args.Error(1)
}
