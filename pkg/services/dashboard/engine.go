package dashboard

import (
	"math"
	"slices"
	"strconv"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/services/figure"
)

// Recompute maps one filter state to the full dashboard output. It is a pure
// function of its inputs.
func Recompute(ds domain.Dataset, filter domain.FilterState) domain.Dashboard {
	filter = filter.Clone()
	view := Filter(ds, filter)
	aggregates := Aggregate(view)

	return domain.Dashboard{
		Filter:     filter,
		Summaries:  Summarize(view.YearView),
		Aggregates: aggregates,
		Figures:    figure.Build(filter.Year, aggregates),
	}
}

// Filter applies continent, beverage and strength predicates in that order and
// then restricts the result to the selected year.
func Filter(ds domain.Dataset, filter domain.FilterState) domain.DerivedView {
	filtered := make([]domain.Record, 0)

	// no beverages selected means no data, not all data
	if len(filter.Beverages) > 0 {
		for _, r := range ds.Records() {
			if filter.Continent != "" && r.Continent != filter.Continent {
				continue
			}
			if !filter.HasBeverage(r.Beverage) {
				continue
			}
			if !filter.AllStrengths() && r.Strength != filter.Strength {
				continue
			}
			filtered = append(filtered, r)
		}
	}

	yearView := make([]domain.Record, 0)
	for _, r := range filtered {
		if r.Year == filter.Year {
			yearView = append(yearView, r)
		}
	}

	return domain.DerivedView{Filtered: filtered, YearView: yearView}
}

// Summarize computes the three headline values over the year view.
func Summarize(yearView []domain.Record) domain.Summaries {
	if len(yearView) == 0 {
		return domain.UnavailableSummaries()
	}

	total, _ := sum(yearView, consumption)
	summaries := domain.Summaries{
		TotalConsumption: formatAmount(total),
		AvgPrice:         domain.NotAvailable,
		UniqueCountries:  strconv.Itoa(countCountries(yearView)),
	}
	if avg, ok := mean(yearView, price); ok {
		summaries.AvgPrice = formatAmount(avg)
	}
	return summaries
}

// Aggregate builds the chart tables. An empty year view empties every table,
// including the year series.
func Aggregate(view domain.DerivedView) domain.Aggregates {
	agg := domain.Aggregates{
		BeverageMeans:   []domain.BeverageMean{},
		ContinentTotals: []domain.ContinentTotal{},
		ScatterPoints:   []domain.ScatterPoint{},
		YearMeans:       []domain.YearMean{},
	}
	if len(view.YearView) == 0 {
		return agg
	}

	// a beverage with no consumption values has no mean and gets no bar
	for _, g := range groupBy(view.YearView, func(r domain.Record) string { return r.Beverage }) {
		if m, ok := mean(g.records, consumption); ok {
			agg.BeverageMeans = append(agg.BeverageMeans, domain.BeverageMean{Beverage: g.key, Mean: m})
		}
	}

	for _, g := range groupBy(view.YearView, func(r domain.Record) string { return r.Continent }) {
		s, _ := sum(g.records, consumption)
		agg.ContinentTotals = append(agg.ContinentTotals, domain.ContinentTotal{Continent: g.key, Total: s})
	}

	for _, r := range view.YearView {
		if math.IsNaN(r.AvgPrice) || math.IsNaN(r.Consumption) {
			continue
		}
		agg.ScatterPoints = append(agg.ScatterPoints, domain.ScatterPoint{
			Price:       r.AvgPrice,
			Consumption: r.Consumption,
			Beverage:    r.Beverage,
			Country:     r.Country,
		})
	}

	// the trend deliberately ignores the year filter
	byYear := make(map[int][]domain.Record)
	for _, r := range view.Filtered {
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)
	for _, y := range years {
		if m, ok := mean(byYear[y], consumption); ok {
			agg.YearMeans = append(agg.YearMeans, domain.YearMean{Year: y, Mean: m})
		}
	}

	return agg
}

type group struct {
	key     string
	records []domain.Record
}

// groupBy returns groups sorted by key.
func groupBy(records []domain.Record, key func(domain.Record) string) []group {
	index := make(map[string]int)
	groups := make([]group, 0)
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].records = append(groups[i].records, r)
	}
	slices.SortFunc(groups, func(a, b group) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})
	return groups
}

func consumption(r domain.Record) float64 { return r.Consumption }

func price(r domain.Record) float64 { return r.AvgPrice }

// sum skips missing values. n is the number of values that contributed.
func sum(records []domain.Record, value func(domain.Record) float64) (total float64, n int) {
	for _, r := range records {
		v := value(r)
		if math.IsNaN(v) {
			continue
		}
		total += v
		n++
	}
	return total, n
}

func mean(records []domain.Record, value func(domain.Record) float64) (float64, bool) {
	total, n := sum(records, value)
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// countCountries counts distinct countries. An empty Country marks a missing
// value and is not counted.
func countCountries(records []domain.Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Country == "" {
			continue
		}
		seen[r.Country] = struct{}{}
	}
	return len(seen)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
