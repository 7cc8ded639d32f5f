package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"wastevision/internal/model"
)

type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDetector) Detect(ctx context.Context, img image.Image) ([]model.Detection, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Detection), args.Error(1)
}

func (m *MockDetector) Close() error {
	args := m.Called()
	return args.Error(0)
}
