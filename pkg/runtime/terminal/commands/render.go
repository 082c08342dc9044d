package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/render/png"
	"github.com/de-tools/consumption-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var figureNames = []string{"bar", "pie", "scatter", "line"}

type RenderCmd struct {
	filter  filterFlags
	outDir  string
	figures []string
	width   int
	height  int
	load    DatasetLoader
}

func NewRenderCmd(load DatasetLoader) *cobra.Command {
	rc := &RenderCmd{load: load}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard charts as PNG files",
		RunE:  rc.run,
	}

	rc.filter.bind(cmd)
	cmd.Flags().StringVar(&rc.outDir, "out", ".", "Directory the PNG files are written to")
	cmd.Flags().StringSliceVar(&rc.figures, "figure", figureNames, "Charts to render")
	cmd.Flags().IntVar(&rc.width, "width", 800, "Image width in pixels")
	cmd.Flags().IntVar(&rc.height, "height", 500, "Image height in pixels")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	ds, err := rc.load(ctx)
	if err != nil {
		return err
	}

	svc := dashboard.NewService(ds)
	result, err := svc.Recompute(ctx, rc.filter.apply(cmd, svc.Options(ctx).Default))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(rc.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// each name maps to one output file, so repeats are rendered once
	names := make([]string, 0, len(rc.figures))
	figs := make([]domain.Figure, 0, len(rc.figures))
	for _, name := range rc.figures {
		if slices.Contains(names, name) {
			continue
		}
		fig, err := png.FigureByName(result.Figures, name)
		if err != nil {
			return err
		}
		names = append(names, name)
		figs = append(figs, fig)
	}

	renderer := &png.Renderer{Width: rc.width, Height: rc.height}
	paths := make([]string, len(figs))

	var g errgroup.Group
	for i, fig := range figs {
		paths[i] = filepath.Join(rc.outDir, names[i]+".png")
		g.Go(func() error {
			if err := writeFigure(renderer, paths[i], fig); err != nil {
				return err
			}
			logger.Info().
				Str("figure", names[i]).
				Str("path", paths[i]).
				Msg("figure rendered")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func writeFigure(renderer *png.Renderer, path string, fig domain.Figure) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return renderer.Render(f, fig)
}
