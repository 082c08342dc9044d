package parquet

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type columns struct {
	country, continent, beverage, strength []string
	continentValid                         []bool
	year                                   []int64
	consumption, price                     []float64
	priceValid                             []bool
}

func buildTable(t *testing.T, c columns, skip string) arrow.Table {
	t.Helper()

	fields := []arrow.Field{
		{Name: dataset.ColCountry, Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: dataset.ColContinent, Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: dataset.ColBeverage, Type: arrow.BinaryTypes.String},
		{Name: dataset.ColStrength, Type: arrow.BinaryTypes.String},
		{Name: dataset.ColYear, Type: arrow.PrimitiveTypes.Int64},
		{Name: dataset.ColConsumption, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: dataset.ColAvgPrice, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}
	kept := make([]arrow.Field, 0, len(fields))
	for _, f := range fields {
		if f.Name != skip {
			kept = append(kept, f)
		}
	}
	schema := arrow.NewSchema(kept, nil)

	rb := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer rb.Release()

	for i, f := range kept {
		switch f.Name {
		case dataset.ColCountry:
			rb.Field(i).(*array.StringBuilder).AppendValues(c.country, nil)
		case dataset.ColContinent:
			rb.Field(i).(*array.StringBuilder).AppendValues(c.continent, c.continentValid)
		case dataset.ColBeverage:
			rb.Field(i).(*array.StringBuilder).AppendValues(c.beverage, nil)
		case dataset.ColStrength:
			rb.Field(i).(*array.StringBuilder).AppendValues(c.strength, nil)
		case dataset.ColYear:
			rb.Field(i).(*array.Int64Builder).AppendValues(c.year, nil)
		case dataset.ColConsumption:
			rb.Field(i).(*array.Float64Builder).AppendValues(c.consumption, nil)
		case dataset.ColAvgPrice:
			rb.Field(i).(*array.Float64Builder).AppendValues(c.price, c.priceValid)
		}
	}

	rec := rb.NewRecord()
	defer rec.Release()

	table := array.NewTableFromRecords(schema, []arrow.Record{rec})
	t.Cleanup(table.Release)
	return table
}

func sample() columns {
	return columns{
		country:     []string{"France", "Japan"},
		continent:   []string{"Europe", "Asia"},
		beverage:    []string{"Wine", "Spirits"},
		strength:    []string{"Medium", "High"},
		year:        []int64{2020, 2021},
		consumption: []float64{6.5, 1.25},
		price:       []float64{8, 0},
		priceValid:  []bool{true, false},
	}
}

func TestFromTable(t *testing.T) {
	// Given
	table := buildTable(t, sample(), "")

	// When
	ds, err := FromTable(table)

	// Then
	require.NoError(t, err)
	records := ds.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "France", records[0].Country)
	assert.Equal(t, "Europe", records[0].Continent)
	assert.Equal(t, "Wine", records[0].Beverage)
	assert.Equal(t, "Medium", records[0].Strength)
	assert.Equal(t, 2020, records[0].Year)
	assert.Equal(t, 6.5, records[0].Consumption)
	assert.Equal(t, 8.0, records[0].AvgPrice)
	assert.Equal(t, 2021, records[1].Year)
	assert.True(t, math.IsNaN(records[1].AvgPrice))
}

func TestFromTable_MissingColumn(t *testing.T) {
	table := buildTable(t, sample(), dataset.ColYear)

	_, err := FromTable(table)

	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestFromTable_NullContinent(t *testing.T) {
	c := sample()
	c.continentValid = []bool{true, false}
	table := buildTable(t, c, "")

	_, err := FromTable(table)

	assert.ErrorIs(t, err, dataset.ErrInvalidRecord)
}

func TestLoad_ParquetFile(t *testing.T) {
	// Given
	table := buildTable(t, sample(), "")
	var buf bytes.Buffer
	err := pqarrow.WriteTable(table, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	// When
	l, err := Factory(dataset.Config{Path: path})
	require.NoError(t, err)
	ds, err := l.Load(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"Asia", "Europe"}, ds.Continents())
	assert.True(t, math.IsNaN(ds.Records()[1].AvgPrice))
}

func TestLoad_MissingFile(t *testing.T) {
	l, err := Factory(dataset.Config{Path: filepath.Join(t.TempDir(), "absent.parquet")})
	require.NoError(t, err)

	_, err = l.Load(context.Background())

	assert.ErrorIs(t, err, dataset.ErrNotFound)
}
