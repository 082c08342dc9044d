package domain

import (
	"slices"
)

type Record struct {
	Country     string // empty when the source has no value
	Continent   string
	Beverage    string  // Beer, Wine, Spirits
	Strength    string  // Alcohol_Strength category
	Year        int     // 2020
	Consumption float64 // litres per capita, NaN when missing
	AvgPrice    float64 // price per litre, NaN when missing
}

// Dataset is the immutable, ordered set of records loaded at startup.
type Dataset struct {
	records []Record
}

func NewDataset(records []Record) Dataset {
	return Dataset{records: slices.Clone(records)}
}

func (d Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the dataset rows in load order.
func (d Dataset) Records() []Record {
	return slices.Clone(d.records)
}

func (d Dataset) Continents() []string {
	return d.distinct(func(r Record) string { return r.Continent })
}

func (d Dataset) Beverages() []string {
	return d.distinct(func(r Record) string { return r.Beverage })
}

func (d Dataset) Strengths() []string {
	return d.distinct(func(r Record) string { return r.Strength })
}

// Years returns the distinct years in ascending order.
func (d Dataset) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range d.records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	slices.Sort(years)
	return years
}

// YearRange returns the minimum and maximum year. ok is false for an empty dataset.
func (d Dataset) YearRange() (min, max int, ok bool) {
	years := d.Years()
	if len(years) == 0 {
		return 0, 0, false
	}
	return years[0], years[len(years)-1], true
}

func (d Dataset) distinct(key func(Record) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range d.records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	slices.Sort(values)
	return values
}
