package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ConsumptionTableSchema = `
	CREATE TABLE IF NOT EXISTS consumption_records (
		country VARCHAR,
		continent VARCHAR NOT NULL,
		beverage VARCHAR NOT NULL,
		alcohol_strength VARCHAR NOT NULL,
		year INTEGER NOT NULL,
		consumption_liters_per_capita DOUBLE,
		avg_price_per_liter DOUBLE
	);
`

var bootQueries = []string{
	ConsumptionTableSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
