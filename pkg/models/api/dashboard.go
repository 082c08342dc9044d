package api

// FilterState is the wire form of the four filter dimensions. A nil continent
// means every continent.
type FilterState struct {
	Continent *string  `json:"continent"`
	Beverages []string `json:"beverages"`
	Strength  string   `json:"strength"`
	Year      int      `json:"year"`
}

type Options struct {
	Continents []string    `json:"continents"`
	Beverages  []string    `json:"beverages"`
	Strengths  []string    `json:"strengths"`
	Years      []int       `json:"years"`
	MinYear    int         `json:"min_year"`
	MaxYear    int         `json:"max_year"`
	Default    FilterState `json:"default"`
}

type Summaries struct {
	TotalConsumption string `json:"total_consumption"`
	AvgPrice         string `json:"avg_price"`
	UniqueCountries  string `json:"unique_countries"`
}

type Figures struct {
	Bar     Figure `json:"bar"`
	Pie     Figure `json:"pie"`
	Scatter Figure `json:"scatter"`
	Line    Figure `json:"line"`
}

type Dashboard struct {
	Filter    FilterState `json:"filter"`
	Summaries Summaries   `json:"summaries"`
	Figures   Figures     `json:"figures"`
}
