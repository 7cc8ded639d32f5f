package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"wastevision/internal/model"
	"wastevision/internal/service"
)

type MockIdentifyService struct {
	mock.Mock
}

func (m *MockIdentifyService) Identify(ctx context.Context, r io.Reader) (*model.IdentifyResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IdentifyResult), args.Error(1)
}

func (m *MockIdentifyService) Labels() []service.LabelEntry {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.LabelEntry)
}
