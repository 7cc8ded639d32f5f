package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wastevision/internal/model"
)

type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) ListLabels(ctx context.Context) (map[string]model.WasteCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]model.WasteCategory), args.Error(1)
}

func (m *MockLabelRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLabelRepository) Upsert(ctx context.Context, entries map[string]model.WasteCategory) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}
