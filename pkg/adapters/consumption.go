package adapters

import (
	"database/sql"
	"math"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/models/store"
)

func MapStoreConsumptionToDomain(r store.ConsumptionRecord) domain.Record {
	return domain.Record{
		Country:     r.Country,
		Continent:   r.Continent,
		Beverage:    r.Beverage,
		Strength:    r.Strength,
		Year:        r.Year,
		Consumption: nullToNaN(r.Consumption),
		AvgPrice:    nullToNaN(r.AvgPrice),
	}
}

func MapDomainConsumptionToStore(r domain.Record) store.ConsumptionRecord {
	return store.ConsumptionRecord{
		Country:     r.Country,
		Continent:   r.Continent,
		Beverage:    r.Beverage,
		Strength:    r.Strength,
		Year:        r.Year,
		Consumption: nanToNull(r.Consumption),
		AvgPrice:    nanToNull(r.AvgPrice),
	}
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func nanToNull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
