package consumption

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/models/store"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/de-tools/consumption-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listColumns = []string{
	"country", "continent", "beverage", "alcohol_strength", "year",
	"consumption_liters_per_capita", "avg_price_per_liter",
}

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestStore_ListScansRows(t *testing.T) {
	// Given
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM consumption_records")).
		WillReturnRows(sqlmock.NewRows(listColumns).
			AddRow("France", "Europe", "Wine", "Medium", 2020, 6.5, 8.0).
			AddRow(nil, "Asia", "Beer", "Low", 2021, nil, 4.0))

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	rows, err := s.List(context.Background())

	// Then
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "France", rows[0].Country)
	assert.Equal(t, sql.NullFloat64{Float64: 6.5, Valid: true}, rows[0].Consumption)
	assert.Equal(t, "", rows[1].Country)
	assert.False(t, rows[1].Consumption.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AddUsesTransactionFromContext(t *testing.T) {
	// Given
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM consumption_records")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO consumption_records"))
	prep.ExpectExec().
		WithArgs("France", "Europe", "Wine", "Medium", 2020, 6.5, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	s, err := NewStore(db)
	require.NoError(t, err)
	ds := domain.NewDataset([]domain.Record{{
		Country: "France", Continent: "Europe", Beverage: "Wine", Strength: "Medium",
		Year: 2020, Consumption: 6.5, AvgPrice: math.NaN(),
	}})

	// When
	err = Import(context.Background(), db, s, ds)

	// Then
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AddEmpty(t *testing.T) {
	f := setupFixture(t)

	assert.NoError(t, f.store.Add(context.Background(), nil))
}

func TestStore_RoundTrip(t *testing.T) {
	// Given
	f := setupFixture(t)
	ctx := context.Background()
	records := []store.ConsumptionRecord{
		{Country: "France", Continent: "Europe", Beverage: "Wine", Strength: "Medium", Year: 2019,
			Consumption: sql.NullFloat64{Float64: 6.5, Valid: true}, AvgPrice: sql.NullFloat64{Float64: 8, Valid: true}},
		{Country: "Japan", Continent: "Asia", Beverage: "Spirits", Strength: "High", Year: 2021,
			Consumption: sql.NullFloat64{Float64: 1.25, Valid: true}},
	}

	// When
	require.NoError(t, f.store.Add(ctx, records))
	got, err := f.store.List(ctx)
	require.NoError(t, err)
	stats, err := f.store.Stats(ctx)
	require.NoError(t, err)

	// Then
	assert.Equal(t, records, got)
	assert.Equal(t, int64(2), stats.RecordsCount)
	assert.Equal(t, int64(2019), stats.MinYear.Int64)
	assert.Equal(t, int64(2021), stats.MaxYear.Int64)

	require.NoError(t, f.store.Truncate(ctx))
	stats, err = f.store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.RecordsCount)
	assert.False(t, stats.MinYear.Valid)
}

func TestImportAndLoad(t *testing.T) {
	// Given a database file populated through Import
	path := filepath.Join(t.TempDir(), "atlas.duckdb")
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	require.NoError(t, err)
	s, err := NewStore(db)
	require.NoError(t, err)

	ds := domain.NewDataset([]domain.Record{
		{Country: "France", Continent: "Europe", Beverage: "Beer", Strength: "Low", Year: 2020, Consumption: 2, AvgPrice: 3},
		{Country: "Germany", Continent: "Europe", Beverage: "Beer", Strength: "Low", Year: 2020, Consumption: 3, AvgPrice: math.NaN()},
	})
	require.NoError(t, Import(context.Background(), db, s, ds))
	require.NoError(t, Import(context.Background(), db, s, ds))
	require.NoError(t, db.Close())

	// When
	l, err := Factory(dataset.Config{Path: path})
	require.NoError(t, err)
	loaded, err := l.Load(context.Background())

	// Then
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "Germany", loaded.Records()[1].Country)
	assert.True(t, math.IsNaN(loaded.Records()[1].AvgPrice))
}

func TestLoad_MissingFile(t *testing.T) {
	l, err := Factory(dataset.Config{Path: filepath.Join(t.TempDir(), "absent.duckdb")})
	require.NoError(t, err)

	_, err = l.Load(context.Background())

	assert.ErrorIs(t, err, dataset.ErrNotFound)
}
