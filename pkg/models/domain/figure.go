package domain

type FigureKind string

const (
	FigureBar     FigureKind = "bar"
	FigurePie     FigureKind = "pie"
	FigureScatter FigureKind = "scatter"
	FigureLine    FigureKind = "line"
	FigureEmpty   FigureKind = "empty"
)

// Figure is a renderer-agnostic chart description. The set of variants is closed:
// BarFigure, PieFigure, ScatterFigure, LineFigure and EmptyFigure.
type Figure interface {
	Kind() FigureKind
	Header() FigureHeader
	isFigure()
}

type Axis struct {
	Title       string
	Visible     bool
	Categorical bool
}

type Annotation struct {
	Text     string
	FontSize int
	Color    string
}

// FigureHeader is shared by every variant so consumers read the same fields
// whether or not the chart has data.
type FigureHeader struct {
	Title       string
	XAxis       Axis
	YAxis       Axis
	LegendTitle string
	Annotations []Annotation
}

func (h FigureHeader) Header() FigureHeader {
	return h
}

type Bar struct {
	Label string
	Value float64
	Color string
}

type BarFigure struct {
	FigureHeader
	Bars []Bar
}

type PieSlice struct {
	Label   string
	Value   float64
	Percent float64
	Pull    float64
	Color   string
}

type PieFigure struct {
	FigureHeader
	Hole   float64
	Slices []PieSlice
}

type ScatterMarker struct {
	X     float64 // price per litre
	Y     float64 // consumption
	Size  float64
	Hover string
}

type ScatterSeries struct {
	Name    string
	Color   string
	Markers []ScatterMarker
}

type ScatterFigure struct {
	FigureHeader
	Series []ScatterSeries
}

type LinePoint struct {
	X string // year rendered as a category
	Y float64
}

type LineFigure struct {
	FigureHeader
	Color   string
	Markers bool
	Points  []LinePoint
}

// EmptyFigure replaces a chart whose aggregate is empty or insufficient.
type EmptyFigure struct {
	FigureHeader
	For     FigureKind
	Message string
}

func (BarFigure) Kind() FigureKind     { return FigureBar }
func (PieFigure) Kind() FigureKind     { return FigurePie }
func (ScatterFigure) Kind() FigureKind { return FigureScatter }
func (LineFigure) Kind() FigureKind    { return FigureLine }
func (EmptyFigure) Kind() FigureKind   { return FigureEmpty }

func (BarFigure) isFigure()     {}
func (PieFigure) isFigure()     {}
func (ScatterFigure) isFigure() {}
func (LineFigure) isFigure()    {}
func (EmptyFigure) isFigure()   {}

// IsEmpty reports whether f is the no-data variant.
func IsEmpty(f Figure) bool {
	_, ok := f.(EmptyFigure)
	return ok
}
