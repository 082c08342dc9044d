package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/consumption-atlas/pkg/adapters"
	"github.com/de-tools/consumption-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	filter    filterFlags
	format    string
	load      DatasetLoader
	reporters map[string]Reporter
}

func NewSummaryCmd(load DatasetLoader, reporters map[string]Reporter) *cobra.Command {
	sc := &SummaryCmd{load: load, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summaries and chart data for a filter",
		RunE:  sc.run,
	}

	sc.filter.bind(cmd)
	cmd.Flags().StringVar(&sc.format, "format", "table", "Output format ("+strings.Join(sc.formats(), ", ")+")")

	return cmd
}

func (sc *SummaryCmd) formats() []string {
	names := make([]string, 0, len(sc.reporters))
	for name := range sc.reporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reporter, ok := sc.reporters[sc.format]
	if !ok {
		return fmt.Errorf("unsupported format %q. Supported formats: %v", sc.format, sc.formats())
	}

	ds, err := sc.load(ctx)
	if err != nil {
		return err
	}

	svc := dashboard.NewService(ds)
	filter := sc.filter.apply(cmd, svc.Options(ctx).Default)

	result, err := svc.Recompute(ctx, filter)
	if err != nil {
		return err
	}

	return reporter.Handle(adapters.MapDashboardDomainToReport(result))
}
