package adapters

import (
	"fmt"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
)

const reportTitle = "Global Alcohol Consumption"

// MapDashboardDomainToReport lays a dashboard out as report sections, one for
// the summaries and one per chart in display order.
func MapDashboardDomainToReport(d domain.Dashboard) *domain.Report {
	report := &domain.Report{
		Title:  reportTitle,
		Filter: d.Filter,
		Sections: []domain.ReportSection{{
			Title: "Summary",
			Summary: map[string]interface{}{
				"Total consumption (l/capita)": d.Summaries.TotalConsumption,
				"Average price (per litre)":    d.Summaries.AvgPrice,
				"Unique countries":             d.Summaries.UniqueCountries,
			},
		}},
	}

	for _, f := range []domain.Figure{d.Figures.Bar, d.Figures.Pie, d.Figures.Scatter, d.Figures.Line} {
		report.Sections = append(report.Sections, mapFigureToSection(f))
	}
	return report
}

func mapFigureToSection(f domain.Figure) domain.ReportSection {
	section := domain.ReportSection{Title: f.Header().Title}

	switch fig := f.(type) {
	case domain.BarFigure:
		for _, b := range fig.Bars {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        b.Label,
				Value:       fmt.Sprintf("%.2f", b.Value),
				Unit:        "l/capita",
				Description: "mean consumption",
			})
		}
	case domain.PieFigure:
		for _, s := range fig.Slices {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        s.Label,
				Value:       fmt.Sprintf("%.2f", s.Value),
				Unit:        "l/capita",
				Description: fmt.Sprintf("%.1f%% of total", s.Percent),
			})
		}
	case domain.ScatterFigure:
		for _, s := range fig.Series {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        s.Name,
				Value:       len(s.Markers),
				Unit:        "points",
				Description: "price vs consumption",
			})
		}
	case domain.LineFigure:
		for _, p := range fig.Points {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        p.X,
				Value:       fmt.Sprintf("%.2f", p.Y),
				Unit:        "l/capita",
				Description: "mean consumption",
			})
		}
	case domain.EmptyFigure:
		section.Summary = map[string]interface{}{"Status": fig.Message}
	}
	return section
}
