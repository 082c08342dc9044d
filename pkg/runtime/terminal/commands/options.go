package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type OptionsCmd struct {
	load DatasetLoader
}

func NewOptionsCmd(load DatasetLoader) *cobra.Command {
	oc := &OptionsCmd{load: load}
	return &cobra.Command{
		Use:   "options",
		Short: "List the filter values available in the dataset",
		RunE:  oc.run,
	}
}

func (oc *OptionsCmd) run(cmd *cobra.Command, _ []string) error {
	ds, err := oc.load(cmd.Context())
	if err != nil {
		return err
	}

	opts := domain.NewOptions(ds)
	years := make([]string, 0, len(opts.Years))
	for _, y := range opts.Years {
		years = append(years, strconv.Itoa(y))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Continents: %s\n", strings.Join(opts.Continents, ", "))
	fmt.Fprintf(out, "Beverages:  %s\n", strings.Join(opts.Beverages, ", "))
	fmt.Fprintf(out, "Strengths:  %s\n", strings.Join(append([]string{domain.AllStrengths}, opts.Strengths...), ", "))
	fmt.Fprintf(out, "Years:      %s (%d-%d)\n", strings.Join(years, ", "), opts.MinYear, opts.MaxYear)
	return nil
}
