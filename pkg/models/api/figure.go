package api

// Figure has one shape for every chart kind, including the empty one. Data holds
// the kind-specific points and is an empty list when there is nothing to draw.
type Figure struct {
	Kind        string       `json:"kind"`
	For         string       `json:"for"`
	Title       string       `json:"title"`
	XAxis       Axis         `json:"x_axis"`
	YAxis       Axis         `json:"y_axis"`
	LegendTitle string       `json:"legend_title,omitempty"`
	Annotations []Annotation `json:"annotations"`
	Style       FigureStyle  `json:"style"`
	Data        interface{}  `json:"data"`
}

type Axis struct {
	Title       string `json:"title,omitempty"`
	Visible     bool   `json:"visible"`
	Categorical bool   `json:"categorical,omitempty"`
}

type Annotation struct {
	Text     string `json:"text"`
	FontSize int    `json:"font_size"`
	Color    string `json:"color"`
}

type FigureStyle struct {
	Hole    float64 `json:"hole,omitempty"`
	Color   string  `json:"color,omitempty"`
	Markers bool    `json:"markers,omitempty"`
}

type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type PieSlice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Pull    float64 `json:"pull"`
	Color   string  `json:"color"`
}

type ScatterMarker struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Hover string  `json:"hover"`
}

type ScatterSeries struct {
	Name    string          `json:"name"`
	Color   string          `json:"color"`
	Markers []ScatterMarker `json:"markers"`
}

type LinePoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}
