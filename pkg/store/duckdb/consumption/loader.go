package consumption

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/de-tools/consumption-atlas/pkg/adapters"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/models/store"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/de-tools/consumption-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

type loader struct {
	path string
}

// Factory builds a loader reading an existing DuckDB database file.
func Factory(cfg dataset.Config) (dataset.Loader, error) {
	return &loader{path: cfg.Path}, nil
}

func (l *loader) Load(ctx context.Context) (domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	// duckdb creates missing files, so absence is checked first
	if _, err := os.Stat(l.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, fmt.Errorf("%w: %s", dataset.ErrNotFound, l.path)
		}
		return domain.Dataset{}, fmt.Errorf("stat duckdb file: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: l.path})
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close duckdb")
		}
	}()

	s, err := NewStore(db)
	if err != nil {
		return domain.Dataset{}, err
	}
	ds, err := Read(ctx, s)
	if err != nil {
		return domain.Dataset{}, err
	}

	logger.Info().
		Str("path", l.path).
		Int("records", ds.Len()).
		Msg("duckdb dataset loaded")
	return ds, nil
}

// Read lists the store and converts the rows into a dataset.
func Read(ctx context.Context, s Store) (domain.Dataset, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}

	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		if row.Continent == "" {
			return domain.Dataset{}, dataset.InvalidRecord(i, dataset.ColContinent)
		}
		records = append(records, adapters.MapStoreConsumptionToDomain(row))
	}
	return domain.NewDataset(records), nil
}

// Import replaces the table contents with ds inside a single transaction.
func Import(ctx context.Context, db *sql.DB, s Store, ds domain.Dataset) error {
	rows := make([]store.ConsumptionRecord, 0, ds.Len())
	for _, r := range ds.Records() {
		rows = append(rows, adapters.MapDomainConsumptionToStore(r))
	}

	return duckdb.RunInTransaction(ctx, db, func(ctx context.Context) error {
		if err := s.Truncate(ctx); err != nil {
			return err
		}
		return s.Add(ctx, rows)
	})
}
