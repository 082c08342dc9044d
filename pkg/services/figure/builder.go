package figure

import (
	"fmt"
	"strconv"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
)

const (
	labelBeverage    = "Beverage type"
	labelMeanUsage   = "Average consumption (l/capita)"
	labelUsage       = "Consumption (l/capita)"
	labelPrice       = "Average price (per litre)"
	labelYear        = "Year"
	legendBeverage   = "Beverage"
	legendContinent  = "Continent"
	trendTitle       = "Average consumption trend by year"
	trendEmptySuffix = " (no data or insufficient data)"
)

// Build maps the aggregate tables of one recomputation to the four charts.
func Build(year int, agg domain.Aggregates) domain.Figures {
	return domain.Figures{
		Bar:     Bar(year, agg.BeverageMeans),
		Pie:     Pie(year, agg.ContinentTotals),
		Scatter: Scatter(year, agg.ScatterPoints),
		Line:    Line(agg.YearMeans),
	}
}

// BarTitle is the bar chart title for year.
func BarTitle(year int) string {
	return fmt.Sprintf("Average consumption by beverage in %d", year)
}

// PieTitle is the pie chart title for year.
func PieTitle(year int) string {
	return fmt.Sprintf("Consumption share by continent in %d", year)
}

// ScatterTitle is the scatter chart title for year.
func ScatterTitle(year int) string {
	return fmt.Sprintf("Consumption vs price per litre in %d", year)
}

// Bar draws one bar per beverage mean, coloured in order.
func Bar(year int, means []domain.BeverageMean) domain.Figure {
	if len(means) == 0 {
		return Empty(domain.FigureBar, BarTitle(year)+noDataSuffix)
	}

	bars := make([]domain.Bar, 0, len(means))
	for i, m := range means {
		bars = append(bars, domain.Bar{
			Label: m.Beverage,
			Value: m.Mean,
			Color: colorAt(pastel, i),
		})
	}

	return domain.BarFigure{
		FigureHeader: domain.FigureHeader{
			Title:       BarTitle(year),
			XAxis:       domain.Axis{Title: labelBeverage, Visible: true, Categorical: true},
			YAxis:       domain.Axis{Title: labelMeanUsage, Visible: true},
			LegendTitle: legendBeverage,
			Annotations: []domain.Annotation{},
		},
		Bars: bars,
	}
}

// Pie draws the continent share donut. A non-positive grand total is no data.
func Pie(year int, totals []domain.ContinentTotal) domain.Figure {
	agg := domain.Aggregates{ContinentTotals: totals}
	if !agg.HasContinentTotals() {
		return Empty(domain.FigurePie, PieTitle(year)+noDataSuffix)
	}

	var grand float64
	for _, t := range totals {
		grand += t.Total
	}

	parts := make([]domain.PieSlice, 0, len(totals))
	for i, t := range totals {
		parts = append(parts, domain.PieSlice{
			Label:   t.Continent,
			Value:   t.Total,
			Percent: t.Total / grand * 100,
			Pull:    piePull,
			Color:   colorAt(pastel1, i),
		})
	}

	return domain.PieFigure{
		FigureHeader: domain.FigureHeader{
			Title:       PieTitle(year),
			LegendTitle: legendContinent,
			Annotations: []domain.Annotation{},
		},
		Hole:   pieHole,
		Slices: parts,
	}
}

// Scatter plots price against consumption, one series per beverage in order of
// first appearance.
func Scatter(year int, points []domain.ScatterPoint) domain.Figure {
	if len(points) == 0 {
		return Empty(domain.FigureScatter, ScatterTitle(year)+noDataSuffix)
	}

	index := make(map[string]int)
	series := make([]domain.ScatterSeries, 0)
	for _, p := range points {
		i, ok := index[p.Beverage]
		if !ok {
			i = len(series)
			index[p.Beverage] = i
			series = append(series, domain.ScatterSeries{
				Name:  p.Beverage,
				Color: colorAt(set2, i),
			})
		}
		series[i].Markers = append(series[i].Markers, domain.ScatterMarker{
			X:     p.Price,
			Y:     p.Consumption,
			Size:  p.Consumption,
			Hover: p.Country,
		})
	}

	return domain.ScatterFigure{
		FigureHeader: domain.FigureHeader{
			Title:       ScatterTitle(year),
			XAxis:       domain.Axis{Title: labelPrice, Visible: true},
			YAxis:       domain.Axis{Title: labelUsage, Visible: true},
			LegendTitle: legendBeverage,
			Annotations: []domain.Annotation{},
		},
		Series: series,
	}
}

// Line draws the yearly trend. It needs at least two years.
func Line(means []domain.YearMean) domain.Figure {
	agg := domain.Aggregates{YearMeans: means}
	if !agg.HasTrend() {
		return Empty(domain.FigureLine, trendTitle+trendEmptySuffix)
	}

	points := make([]domain.LinePoint, 0, len(means))
	for _, m := range means {
		points = append(points, domain.LinePoint{X: strconv.Itoa(m.Year), Y: m.Mean})
	}

	return domain.LineFigure{
		FigureHeader: domain.FigureHeader{
			Title:       trendTitle,
			XAxis:       domain.Axis{Title: labelYear, Visible: true, Categorical: true},
			YAxis:       domain.Axis{Title: labelMeanUsage, Visible: true},
			Annotations: []domain.Annotation{},
		},
		Color:   lineColor,
		Markers: true,
		Points:  points,
	}
}

// Empty is the no-data chart. Axes are hidden and a single annotation carries the message.
func Empty(kind domain.FigureKind, title string) domain.Figure {
	return domain.EmptyFigure{
		FigureHeader: domain.FigureHeader{
			Title: title,
			XAxis: domain.Axis{Visible: false},
			YAxis: domain.Axis{Visible: false},
			Annotations: []domain.Annotation{{
				Text:     noDataText,
				FontSize: emptyFont,
				Color:    emptyColor,
			}},
		},
		For:     kind,
		Message: noDataText,
	}
}
