package parquet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/rs/zerolog"
)

type loader struct {
	path string
}

func Factory(cfg dataset.Config) (dataset.Loader, error) {
	return &loader{path: cfg.Path}, nil
}

func (l *loader) Load(ctx context.Context) (domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, fmt.Errorf("%w: %s", dataset.ErrNotFound, l.path)
		}
		return domain.Dataset{}, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := reader.ReadTable(ctx)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	ds, err := FromTable(table)
	if err != nil {
		return domain.Dataset{}, err
	}

	logger.Info().
		Str("path", l.path).
		Int("records", ds.Len()).
		Msg("parquet dataset loaded")
	return ds, nil
}

// FromTable decodes the required columns of an Arrow table by name.
func FromTable(table arrow.Table) (domain.Dataset, error) {
	schema := table.Schema()
	names := make([]string, 0, schema.NumFields())
	for _, f := range schema.Fields() {
		names = append(names, f.Name)
	}
	if err := dataset.CheckColumns(names); err != nil {
		return domain.Dataset{}, err
	}

	column := func(name string) *arrow.Column {
		return table.Column(schema.FieldIndices(name)[0])
	}

	country, _, err := stringColumn(column(dataset.ColCountry))
	if err != nil {
		return domain.Dataset{}, err
	}
	continent, err := requiredStrings(column(dataset.ColContinent))
	if err != nil {
		return domain.Dataset{}, err
	}
	beverage, err := requiredStrings(column(dataset.ColBeverage))
	if err != nil {
		return domain.Dataset{}, err
	}
	strength, err := requiredStrings(column(dataset.ColStrength))
	if err != nil {
		return domain.Dataset{}, err
	}
	years, err := intColumn(column(dataset.ColYear))
	if err != nil {
		return domain.Dataset{}, err
	}
	consumption, err := floatColumn(column(dataset.ColConsumption))
	if err != nil {
		return domain.Dataset{}, err
	}
	price, err := floatColumn(column(dataset.ColAvgPrice))
	if err != nil {
		return domain.Dataset{}, err
	}

	records := make([]domain.Record, 0, table.NumRows())
	for i := range int(table.NumRows()) {
		records = append(records, domain.Record{
			Country:     country[i],
			Continent:   continent[i],
			Beverage:    beverage[i],
			Strength:    strength[i],
			Year:        years[i],
			Consumption: consumption[i],
			AvgPrice:    price[i],
		})
	}
	return domain.NewDataset(records), nil
}

func requiredStrings(col *arrow.Column) ([]string, error) {
	values, nulls, err := stringColumn(col)
	if err != nil {
		return nil, err
	}
	for row, null := range nulls {
		if null {
			return nil, dataset.InvalidRecord(row, col.Name())
		}
	}
	return values, nil
}

func stringColumn(col *arrow.Column) ([]string, []bool, error) {
	values := make([]string, 0, col.Len())
	nulls := make([]bool, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			nulls = append(nulls, chunk.IsNull(i))
			switch arr := chunk.(type) {
			case *array.String:
				values = append(values, arr.Value(i))
			case *array.LargeString:
				values = append(values, arr.Value(i))
			default:
				return nil, nil, unsupported(col, chunk)
			}
		}
	}
	return values, nulls, nil
}

func intColumn(col *arrow.Column) ([]int, error) {
	values := make([]int, 0, col.Len())
	row := 0
	for _, chunk := range col.Data().Chunks() {
		for i := 0; i < chunk.Len(); i, row = i+1, row+1 {
			if chunk.IsNull(i) {
				return nil, dataset.InvalidRecord(row, col.Name())
			}
			switch arr := chunk.(type) {
			case *array.Int64:
				values = append(values, int(arr.Value(i)))
			case *array.Int32:
				values = append(values, int(arr.Value(i)))
			case *array.Int16:
				values = append(values, int(arr.Value(i)))
			default:
				return nil, unsupported(col, chunk)
			}
		}
	}
	return values, nil
}

// floatColumn maps nulls to NaN.
func floatColumn(col *arrow.Column) ([]float64, error) {
	values := make([]float64, 0, col.Len())
	for _, chunk := range col.Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				values = append(values, math.NaN())
				continue
			}
			switch arr := chunk.(type) {
			case *array.Float64:
				values = append(values, arr.Value(i))
			case *array.Float32:
				values = append(values, float64(arr.Value(i)))
			case *array.Int64:
				values = append(values, float64(arr.Value(i)))
			case *array.Int32:
				values = append(values, float64(arr.Value(i)))
			default:
				return nil, unsupported(col, chunk)
			}
		}
	}
	return values, nil
}

func unsupported(col *arrow.Column, chunk arrow.Array) error {
	return fmt.Errorf("%w: column %s has unsupported type %s", dataset.ErrInvalidRecord, col.Name(), chunk.DataType())
}
