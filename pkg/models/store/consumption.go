package store

import "database/sql"

type ConsumptionRecord struct {
	Country     string
	Continent   string
	Beverage    string
	Strength    string
	Year        int
	Consumption sql.NullFloat64
	AvgPrice    sql.NullFloat64
}

type ConsumptionStats struct {
	RecordsCount int64
	MinYear      sql.NullInt64
	MaxYear      sql.NullInt64
}
