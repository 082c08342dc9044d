package domain

// NotAvailable is shown in place of a summary when the year view is empty.
const NotAvailable = "N/A"

type DerivedView struct {
	Filtered []Record // continent, beverage and strength filters
	YearView []Record // Filtered restricted to the selected year
}

type Summaries struct {
	TotalConsumption string
	AvgPrice         string
	UniqueCountries  string
}

func UnavailableSummaries() Summaries {
	return Summaries{
		TotalConsumption: NotAvailable,
		AvgPrice:         NotAvailable,
		UniqueCountries:  NotAvailable,
	}
}

type BeverageMean struct {
	Beverage string
	Mean     float64
}

type ContinentTotal struct {
	Continent string
	Total     float64
}

type ScatterPoint struct {
	Price       float64
	Consumption float64
	Beverage    string
	Country     string
}

type YearMean struct {
	Year int
	Mean float64
}

// Aggregates holds the grouped tables behind the four charts.
type Aggregates struct {
	BeverageMeans   []BeverageMean
	ContinentTotals []ContinentTotal
	ScatterPoints   []ScatterPoint
	YearMeans       []YearMean
}

// HasContinentTotals reports whether the pie table carries a positive total.
func (a Aggregates) HasContinentTotals() bool {
	var total float64
	for _, c := range a.ContinentTotals {
		total += c.Total
	}
	return len(a.ContinentTotals) > 0 && total > 0
}

// HasTrend reports whether the year series spans at least two years.
func (a Aggregates) HasTrend() bool {
	return len(a.YearMeans) > 1
}

type Figures struct {
	Bar     Figure
	Pie     Figure
	Scatter Figure
	Line    Figure
}

// Dashboard is the full output of one recomputation.
type Dashboard struct {
	Filter     FilterState
	Summaries  Summaries
	Aggregates Aggregates
	Figures    Figures
}
