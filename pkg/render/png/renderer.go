package png

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrUnknownFigure = errors.New("unknown figure")

const (
	defaultWidth  = 800
	defaultHeight = 500
	minDotWidth   = 3
	maxDotWidth   = 18
)

type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

// Render writes f as a PNG image. Every figure variant is handled, including the
// empty one, so callers never branch on data availability.
func (r *Renderer) Render(w io.Writer, f domain.Figure) error {
	var err error
	switch fig := f.(type) {
	case domain.BarFigure:
		err = r.bar(fig).Render(chart.PNG, w)
	case domain.PieFigure:
		err = r.pie(fig).Render(chart.PNG, w)
	case domain.ScatterFigure:
		err = r.scatter(fig).Render(chart.PNG, w)
	case domain.LineFigure:
		err = r.line(fig).Render(chart.PNG, w)
	case domain.EmptyFigure:
		err = r.empty(fig).Render(chart.PNG, w)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownFigure, f)
	}
	if err != nil {
		return fmt.Errorf("render %s figure: %w", f.Kind(), err)
	}
	return nil
}

func (r *Renderer) bar(fig domain.BarFigure) chart.BarChart {
	bars := make([]chart.Value, 0, len(fig.Bars))
	top := 0.0
	for _, b := range fig.Bars {
		top = max(top, b.Value)
		color := drawing.ColorFromHex(hex(b.Color))
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	return chart.BarChart{
		Title:      fig.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50}},
		BarWidth:   r.Width / (2*len(bars) + 1),
		YAxis:      chart.YAxis{Name: fig.YAxis.Title, Range: &chart.ContinuousRange{Min: 0, Max: barTop(top)}},
		Bars:       bars,
	}
}

func (r *Renderer) pie(fig domain.PieFigure) chart.DonutChart {
	values := make([]chart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		color := drawing.ColorFromHex(hex(s.Color))
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percent),
			Value: s.Value,
			Style: chart.Style{FillColor: color, StrokeColor: drawing.ColorWhite},
		})
	}

	return chart.DonutChart{
		Title:  fig.Title,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
}

func (r *Renderer) scatter(fig domain.ScatterFigure) chart.Chart {
	maxSize := 0.0
	for _, s := range fig.Series {
		for _, m := range s.Markers {
			maxSize = max(maxSize, m.Size)
		}
	}

	var allX, allY []float64
	series := make([]chart.Series, 0, len(fig.Series))
	for _, s := range fig.Series {
		xs := make([]float64, 0, len(s.Markers))
		ys := make([]float64, 0, len(s.Markers))
		sizes := make([]float64, 0, len(s.Markers))
		for _, m := range s.Markers {
			xs = append(xs, m.X)
			ys = append(ys, m.Y)
			sizes = append(sizes, dotWidth(m.Size, maxSize))
		}
		allX = append(allX, xs...)
		allY = append(allY, ys...)
		color := drawing.ColorFromHex(hex(s.Color))
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    color,
				DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
					return sizes[index]
				},
			},
		})
	}

	c := chart.Chart{
		Title:      fig.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 120}},
		XAxis:      chart.XAxis{Name: fig.XAxis.Title, Range: paddedRange(allX)},
		YAxis:      chart.YAxis{Name: fig.YAxis.Title, Range: paddedRange(allY)},
		Series:     series,
	}
	c.Elements = []chart.Renderable{chart.LegendLeft(&c)}
	return c
}

func (r *Renderer) line(fig domain.LineFigure) chart.Chart {
	xs := make([]float64, 0, len(fig.Points))
	ys := make([]float64, 0, len(fig.Points))
	ticks := make([]chart.Tick, 0, len(fig.Points))
	for i, p := range fig.Points {
		// years are categories, so they sit at evenly spaced positions
		xs = append(xs, float64(i))
		ys = append(ys, p.Y)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.X})
	}

	color := drawing.ColorFromHex(hex(fig.Color))
	style := chart.Style{StrokeColor: color, StrokeWidth: 2}
	if fig.Markers {
		style.DotColor = color
		style.DotWidth = 5
	}

	return chart.Chart{
		Title:      fig.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50}},
		XAxis: chart.XAxis{
			Name:  fig.XAxis.Title,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(fig.Points)) - 0.5},
		},
		YAxis: chart.YAxis{Name: fig.YAxis.Title, Range: paddedRange(ys)},
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   style,
		}},
	}
}

// empty draws hidden axes around a single centred annotation.
func (r *Renderer) empty(fig domain.EmptyFigure) chart.Chart {
	text := fig.Message
	fontSize := 16.0
	fontColor := drawing.ColorFromHex("888888")
	if len(fig.Annotations) > 0 {
		a := fig.Annotations[0]
		text = a.Text
		fontSize = float64(a.FontSize)
		fontColor = drawing.ColorFromHex(hex(a.Color))
	}

	return chart.Chart{
		Title:  fig.Title,
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{Style: chart.Hidden()},
		YAxis:  chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					DotColor:    drawing.ColorTransparent,
				},
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{{
					XValue: 0.5,
					YValue: 0.5,
					Label:  text,
					Style: chart.Style{
						FontSize:    fontSize,
						FontColor:   fontColor,
						StrokeColor: drawing.ColorTransparent,
						FillColor:   drawing.ColorTransparent,
					},
				}},
			},
		},
	}
}

// paddedRange spans values with a margin. go-chart refuses ranges of zero width,
// which a single bar or a flat series would otherwise produce.
func paddedRange(values []float64) *chart.ContinuousRange {
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = max(math.Abs(hi)*0.1, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// barTop leaves headroom above the tallest bar so the axis never collapses.
func barTop(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

// dotWidth scales a marker size into a pixel width.
func dotWidth(size, maxSize float64) float64 {
	if maxSize <= 0 {
		return minDotWidth
	}
	return minDotWidth + (maxDotWidth-minDotWidth)*size/maxSize
}

func hex(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}

// FigureByName picks one of the four dashboard charts by kind name.
func FigureByName(figures domain.Figures, name string) (domain.Figure, error) {
	switch domain.FigureKind(name) {
	case domain.FigureBar:
		return figures.Bar, nil
	case domain.FigurePie:
		return figures.Pie, nil
	case domain.FigureScatter:
		return figures.Scatter, nil
	case domain.FigureLine:
		return figures.Line, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFigure, strconv.Quote(name))
}
