package sources

import (
	"github.com/de-tools/consumption-atlas/pkg/store/csv"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/de-tools/consumption-atlas/pkg/store/duckdb/consumption"
	"github.com/de-tools/consumption-atlas/pkg/store/parquet"
)

// NewRegistry returns a registry with every built-in dataset driver.
func NewRegistry() dataset.Registry {
	return dataset.NewRegistry(map[string]dataset.LoaderFactory{
		dataset.DriverCSV:     csv.Factory,
		dataset.DriverParquet: parquet.Factory,
		dataset.DriverDuckDB:  consumption.Factory,
	})
}
