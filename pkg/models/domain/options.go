package domain

// Options are the control domains a client needs to build its filter widgets.
type Options struct {
	Continents []string
	Beverages  []string
	Strengths  []string
	Years      []int
	MinYear    int
	MaxYear    int
	Default    FilterState
}

func NewOptions(ds Dataset) Options {
	minYear, maxYear, _ := ds.YearRange()
	return Options{
		Continents: ds.Continents(),
		Beverages:  ds.Beverages(),
		Strengths:  ds.Strengths(),
		Years:      ds.Years(),
		MinYear:    minYear,
		MaxYear:    maxYear,
		Default:    DefaultFilterState(ds),
	}
}
