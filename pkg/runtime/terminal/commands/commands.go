package commands

import (
	"context"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

// DatasetLoader loads the dataset selected by the persistent flags.
type DatasetLoader func(ctx context.Context) (domain.Dataset, error)

type Reporter interface {
	Handle(report *domain.Report) error
}

// filterFlags holds the dashboard filter given on the command line. Flags that
// are not set keep the dataset default.
type filterFlags struct {
	continent string
	beverages []string
	strength  string
	year      int
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.continent, "continent", "", "Continent to keep (empty for all)")
	cmd.Flags().StringSliceVar(&f.beverages, "beverage", nil, "Beverages to keep (repeat or comma separate; empty selects none)")
	cmd.Flags().StringVar(&f.strength, "strength", domain.AllStrengths, "Alcohol strength to keep")
	cmd.Flags().IntVar(&f.year, "year", 0, "Year to show (defaults to the first year in the dataset)")
}

func (f *filterFlags) apply(cmd *cobra.Command, defaults domain.FilterState) domain.FilterState {
	filter := defaults.Clone()
	flags := cmd.Flags()

	if flags.Changed("continent") {
		filter.Continent = f.continent
	}
	if flags.Changed("beverage") {
		filter.Beverages = append([]string{}, f.beverages...)
	}
	if flags.Changed("strength") {
		filter.Strength = f.strength
	}
	if flags.Changed("year") {
		filter.Year = f.year
	}
	return filter
}
