package consumption

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/consumption-atlas/pkg/models/store"
	"github.com/de-tools/consumption-atlas/pkg/store/duckdb"
)

// Store reads and writes the consumption_records table.
type Store interface {
	Add(ctx context.Context, records []store.ConsumptionRecord) error
	List(ctx context.Context) ([]store.ConsumptionRecord, error)
	Stats(ctx context.Context) (*store.ConsumptionStats, error)
	Truncate(ctx context.Context) error
}

type consumptionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &consumptionStore{db: db}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (s *consumptionStore) conn(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *consumptionStore) Add(ctx context.Context, records []store.ConsumptionRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO consumption_records (
			country, continent, beverage, alcohol_strength, year,
			consumption_liters_per_capita, avg_price_per_liter
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := s.conn(ctx).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.Country,
			r.Continent,
			r.Beverage,
			r.Strength,
			r.Year,
			r.Consumption,
			r.AvgPrice,
		)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return nil
}

// List returns every row in insertion order.
func (s *consumptionStore) List(ctx context.Context) ([]store.ConsumptionRecord, error) {
	query := `
		SELECT country, continent, beverage, alcohol_strength, year,
			consumption_liters_per_capita, avg_price_per_liter
		FROM consumption_records
		ORDER BY rowid
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query consumption: %w", err)
	}
	defer rows.Close()

	records := make([]store.ConsumptionRecord, 0)
	for rows.Next() {
		var (
			r       store.ConsumptionRecord
			country sql.NullString
		)
		if err := rows.Scan(
			&country,
			&r.Continent,
			&r.Beverage,
			&r.Strength,
			&r.Year,
			&r.Consumption,
			&r.AvgPrice,
		); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		r.Country = country.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumption: %w", err)
	}
	return records, nil
}

func (s *consumptionStore) Stats(ctx context.Context) (*store.ConsumptionStats, error) {
	query := `SELECT COUNT(*), MIN(year), MAX(year) FROM consumption_records`

	var stats store.ConsumptionStats
	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.RecordsCount, &stats.MinYear, &stats.MaxYear); err != nil {
		return nil, fmt.Errorf("get consumption stats: %w", err)
	}
	return &stats, nil
}

func (s *consumptionStore) Truncate(ctx context.Context) error {
	if _, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM consumption_records`); err != nil {
		return fmt.Errorf("truncate consumption: %w", err)
	}
	return nil
}
