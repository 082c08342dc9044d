package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
)

const DefaultPath = "global_alcohol_consumption.csv"

// Column names of the source table.
const (
	ColCountry     = "Country"
	ColContinent   = "Continent"
	ColBeverage    = "Beverage"
	ColStrength    = "Alcohol_Strength"
	ColYear        = "Year"
	ColConsumption = "Consumption_Liters_Per_Capita"
	ColAvgPrice    = "Avg_Price_Per_Liter"
)

var Columns = []string{
	ColCountry,
	ColContinent,
	ColBeverage,
	ColStrength,
	ColYear,
	ColConsumption,
	ColAvgPrice,
}

var (
	ErrNotFound      = errors.New("dataset file not found")
	ErrMissingColumn = errors.New("dataset column missing")
	ErrInvalidRecord = errors.New("dataset record invalid")
)

const (
	DriverCSV     = "csv"
	DriverParquet = "parquet"
	DriverDuckDB  = "duckdb"
)

type Config struct {
	Path      string `mapstructure:"path"`
	Driver    string `mapstructure:"driver"`    // empty: inferred from the extension
	Delimiter string `mapstructure:"delimiter"` // csv only, empty: detected
}

// ResolveDriver returns the configured driver or infers one from the file extension.
func (c Config) ResolveDriver() string {
	if c.Driver != "" {
		return strings.ToLower(c.Driver)
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".parquet":
		return DriverParquet
	case ".duckdb", ".db":
		return DriverDuckDB
	default:
		return DriverCSV
	}
}

// Loader reads the whole dataset in one pass. There is no partial load.
type Loader interface {
	Load(ctx context.Context) (domain.Dataset, error)
}

// Open creates the loader for cfg through the registry and loads the dataset.
func Open(ctx context.Context, registry Registry, cfg Config) (domain.Dataset, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}

	loader, err := registry.Create(cfg.ResolveDriver(), cfg)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("create dataset loader: %w", err)
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load dataset %s: %w", cfg.Path, err)
	}
	return ds, nil
}

// CheckColumns fails with ErrMissingColumn when a required column is absent.
func CheckColumns(names []string) error {
	var missing []string
	for _, c := range Columns {
		if !slices.Contains(names, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// InvalidRecord reports a missing required value at a zero-based data row.
func InvalidRecord(row int, column string) error {
	return fmt.Errorf("%w: row %d has no %s", ErrInvalidRecord, row+1, column)
}
