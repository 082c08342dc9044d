package domain

import (
	"errors"
	"fmt"
	"slices"
)

// AllStrengths is the strength sentinel that disables the strength filter.
const AllStrengths = "All_Strengths"

var ErrInvalidFilter = errors.New("invalid filter")

// FilterState is replaced wholesale on every interaction, never patched mid-computation.
type FilterState struct {
	Continent string   // empty means every continent
	Beverages []string // empty selects nothing
	Strength  string   // AllStrengths or a dataset strength
	Year      int
}

// DefaultFilterState selects every continent, beverage and strength for the first year.
func DefaultFilterState(ds Dataset) FilterState {
	minYear, _, _ := ds.YearRange()
	return FilterState{
		Beverages: ds.Beverages(),
		Strength:  AllStrengths,
		Year:      minYear,
	}
}

func (f FilterState) AllStrengths() bool {
	return f.Strength == "" || f.Strength == AllStrengths
}

func (f FilterState) HasBeverage(beverage string) bool {
	return slices.Contains(f.Beverages, beverage)
}

// Clone returns a copy that does not share the beverage slice.
func (f FilterState) Clone() FilterState {
	f.Beverages = slices.Clone(f.Beverages)
	return f
}

// Validate checks the filter values against the control domains of ds.
func (f FilterState) Validate(ds Dataset) error {
	if f.Continent != "" && !slices.Contains(ds.Continents(), f.Continent) {
		return fmt.Errorf("%w: unknown continent %q", ErrInvalidFilter, f.Continent)
	}

	beverages := ds.Beverages()
	for _, b := range f.Beverages {
		if !slices.Contains(beverages, b) {
			return fmt.Errorf("%w: unknown beverage %q", ErrInvalidFilter, b)
		}
	}

	if !f.AllStrengths() && !slices.Contains(ds.Strengths(), f.Strength) {
		return fmt.Errorf("%w: unknown strength %q", ErrInvalidFilter, f.Strength)
	}

	minYear, maxYear, ok := ds.YearRange()
	if !ok {
		return nil
	}
	if f.Year < minYear || f.Year > maxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidFilter, f.Year, minYear, maxYear)
	}
	return nil
}
