package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastevision/internal/model"
)

func TestLabelPostgres_ListLabels(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewLabelPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"label", "category"}).
			AddRow("banana", "biodegradable").
			AddRow("bottle", "recyclable").
			AddRow("person", "not waste")

		mock.ExpectQuery("SELECT label, category FROM waste_labels").WillReturnRows(rows)

		got, err := repo.ListLabels(ctx)

		require.NoError(t, err)
		assert.Equal(t, map[string]model.WasteCategory{
			"banana": model.Biodegradable,
			"bottle": model.Recyclable,
			"person": model.NotWaste,
		}, got)
	})

	t.Run("invalid category", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"label", "category"}).AddRow("can", "metal")
		mock.ExpectQuery("SELECT label, category FROM waste_labels").WillReturnRows(rows)

		got, err := repo.ListLabels(ctx)

		assert.ErrorContains(t, err, `label "can"`)
		assert.Nil(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT label, category FROM waste_labels").WillReturnError(errors.New("boom"))

		got, err := repo.ListLabels(ctx)

		assert.EqualError(t, err, "boom")
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelPostgres_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLabelPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM waste_labels").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(80))

	n, err := repo.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 80, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelPostgres_Upsert(t *testing.T) {
	entries := map[string]model.WasteCategory{
		"bottle": model.Recyclable,
		"apple":  model.Biodegradable,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO waste_labels").
			WithArgs("apple", "biodegradable").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO waste_labels").
			WithArgs("bottle", "recyclable").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		n, err := NewLabelPostgres(db).Upsert(context.Background(), entries)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert error rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO waste_labels").
			WithArgs("apple", "biodegradable").
			WillReturnError(errors.New("constraint"))
		mock.ExpectRollback()

		n, err := NewLabelPostgres(db).Upsert(context.Background(), entries)

		assert.ErrorContains(t, err, `insert label "apple": constraint`)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
