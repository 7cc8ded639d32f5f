package classification

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wastevision/internal/model"
	"wastevision/internal/repository/mocks"
)

func TestLoadSeeded(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store is seeded", func(t *testing.T) {
		repo := new(mocks.MockLabelRepository)
		log, hook := logtest.NewNullLogger()

		repo.On("Count", ctx).Return(0, nil)
		repo.On("Upsert", ctx, BuiltinEntries()).Return(80, nil)
		repo.On("ListLabels", ctx).Return(BuiltinEntries(), nil)

		table, err := LoadSeeded(ctx, repo, log)

		require.NoError(t, err)
		assert.Equal(t, model.Recyclable, table.Classify("bottle"))
		assert.Equal(t, "labels_seeded", hook.LastEntry().Data["event"])
		repo.AssertExpectations(t)
	})

	t.Run("populated store is read as-is", func(t *testing.T) {
		repo := new(mocks.MockLabelRepository)
		log, _ := logtest.NewNullLogger()

		repo.On("Count", ctx).Return(1, nil)
		repo.On("ListLabels", ctx).Return(map[string]model.WasteCategory{"bottle": model.Hazardous}, nil)

		table, err := LoadSeeded(ctx, repo, log)

		require.NoError(t, err)
		assert.Equal(t, model.Hazardous, table.Classify("bottle"))
		assert.Equal(t, 1, table.Len())
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("count error", func(t *testing.T) {
		repo := new(mocks.MockLabelRepository)
		log, _ := logtest.NewNullLogger()
		repo.On("Count", ctx).Return(0, errors.New("relation does not exist"))

		_, err := LoadSeeded(ctx, repo, log)
		assert.EqualError(t, err, "count labels: relation does not exist")
	})

	t.Run("seed error", func(t *testing.T) {
		repo := new(mocks.MockLabelRepository)
		log, _ := logtest.NewNullLogger()
		repo.On("Count", ctx).Return(0, nil)
		repo.On("Upsert", ctx, mock.Anything).Return(0, errors.New("read-only transaction"))

		_, err := LoadSeeded(ctx, repo, log)
		assert.EqualError(t, err, "seed labels: read-only transaction")
	})
}
