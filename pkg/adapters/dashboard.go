package adapters

import (
	"slices"

	"github.com/de-tools/consumption-atlas/pkg/models/api"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
)

func MapFilterDomainToApi(f domain.FilterState) api.FilterState {
	out := api.FilterState{
		Beverages: slices.Clone(f.Beverages),
		Strength:  f.Strength,
		Year:      f.Year,
	}
	if out.Beverages == nil {
		out.Beverages = []string{}
	}
	if out.Strength == "" {
		out.Strength = domain.AllStrengths
	}
	if f.Continent != "" {
		continent := f.Continent
		out.Continent = &continent
	}
	return out
}

func MapFilterApiToDomain(f api.FilterState) domain.FilterState {
	out := domain.FilterState{
		Beverages: slices.Clone(f.Beverages),
		Strength:  f.Strength,
		Year:      f.Year,
	}
	if f.Continent != nil {
		out.Continent = *f.Continent
	}
	return out
}

func MapOptionsDomainToApi(o domain.Options) api.Options {
	return api.Options{
		Continents: o.Continents,
		Beverages:  o.Beverages,
		Strengths:  o.Strengths,
		Years:      o.Years,
		MinYear:    o.MinYear,
		MaxYear:    o.MaxYear,
		Default:    MapFilterDomainToApi(o.Default),
	}
}

func MapDashboardDomainToApi(d domain.Dashboard) api.Dashboard {
	return api.Dashboard{
		Filter: MapFilterDomainToApi(d.Filter),
		Summaries: api.Summaries{
			TotalConsumption: d.Summaries.TotalConsumption,
			AvgPrice:         d.Summaries.AvgPrice,
			UniqueCountries:  d.Summaries.UniqueCountries,
		},
		Figures: api.Figures{
			Bar:     MapFigureDomainToApi(d.Figures.Bar),
			Pie:     MapFigureDomainToApi(d.Figures.Pie),
			Scatter: MapFigureDomainToApi(d.Figures.Scatter),
			Line:    MapFigureDomainToApi(d.Figures.Line),
		},
	}
}

// MapFigureDomainToApi flattens every figure variant into the single wire shape.
func MapFigureDomainToApi(f domain.Figure) api.Figure {
	h := f.Header()
	out := api.Figure{
		Kind:        string(f.Kind()),
		For:         string(f.Kind()),
		Title:       h.Title,
		XAxis:       api.Axis{Title: h.XAxis.Title, Visible: h.XAxis.Visible, Categorical: h.XAxis.Categorical},
		YAxis:       api.Axis{Title: h.YAxis.Title, Visible: h.YAxis.Visible, Categorical: h.YAxis.Categorical},
		LegendTitle: h.LegendTitle,
		Annotations: make([]api.Annotation, 0, len(h.Annotations)),
	}
	for _, a := range h.Annotations {
		out.Annotations = append(out.Annotations, api.Annotation{Text: a.Text, FontSize: a.FontSize, Color: a.Color})
	}

	switch fig := f.(type) {
	case domain.BarFigure:
		bars := make([]api.Bar, 0, len(fig.Bars))
		for _, b := range fig.Bars {
			bars = append(bars, api.Bar{Label: b.Label, Value: b.Value, Color: b.Color})
		}
		out.Data = bars
	case domain.PieFigure:
		parts := make([]api.PieSlice, 0, len(fig.Slices))
		for _, s := range fig.Slices {
			parts = append(parts, api.PieSlice{Label: s.Label, Value: s.Value, Percent: s.Percent, Pull: s.Pull, Color: s.Color})
		}
		out.Style.Hole = fig.Hole
		out.Data = parts
	case domain.ScatterFigure:
		series := make([]api.ScatterSeries, 0, len(fig.Series))
		for _, s := range fig.Series {
			markers := make([]api.ScatterMarker, 0, len(s.Markers))
			for _, m := range s.Markers {
				markers = append(markers, api.ScatterMarker{X: m.X, Y: m.Y, Size: m.Size, Hover: m.Hover})
			}
			series = append(series, api.ScatterSeries{Name: s.Name, Color: s.Color, Markers: markers})
		}
		out.Data = series
	case domain.LineFigure:
		points := make([]api.LinePoint, 0, len(fig.Points))
		for _, p := range fig.Points {
			points = append(points, api.LinePoint{X: p.X, Y: p.Y})
		}
		out.Style.Color = fig.Color
		out.Style.Markers = fig.Markers
		out.Data = points
	case domain.EmptyFigure:
		out.For = string(fig.For)
		out.Data = []struct{}{}
	}
	return out
}
