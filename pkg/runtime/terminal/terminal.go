package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/consumption-atlas/pkg/logging"
	"github.com/de-tools/consumption-atlas/pkg/models/domain"
	"github.com/de-tools/consumption-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/consumption-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/consumption-atlas/pkg/services/config"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry   dataset.Registry
	output     io.Writer
	logOutput  io.Writer
	rootCmd    *cobra.Command
	configPath string
	source     dataset.Config
	cfg        *config.Config
}

// Options contain configuration for the CLI
type Options struct {
	Registry  dataset.Registry
	Output    io.Writer
	LogOutput io.Writer
	Args      []string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		registry:  opts.Registry,
		output:    opts.Output,
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	if opts.Args != nil {
		cli.rootCmd.SetArgs(opts.Args)
	}
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "atlas",
		Short:             "Global alcohol consumption dashboard",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&cli.source.Path, "dataset", "", "Dataset file (overrides dataset.path)")
	cmd.PersistentFlags().StringVar(&cli.source.Driver, "driver", "",
		fmt.Sprintf("Dataset driver %v (inferred from the file extension when empty)", cli.registry.ListDrivers()))

	reporters := map[string]commands.Reporter{
		"table": export.NewReporter(cli.output),
		"text":  NewReporter(cli.output),
		"yaml":  export.NewYAMLReporter(cli.output),
	}

	cmd.AddCommand(commands.NewSummaryCmd(cli.loadDataset, reporters))
	cmd.AddCommand(commands.NewRenderCmd(cli.loadDataset))
	cmd.AddCommand(commands.NewOptionsCmd(cli.loadDataset))
	cmd.AddCommand(commands.NewImportCmd(cli.loadDataset))

	return cmd
}

// setup loads the configuration and attaches a logger to the command context.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	if cli.source.Path != "" {
		cfg.Dataset.Path = cli.source.Path
	}
	if cli.source.Driver != "" {
		cfg.Dataset.Driver = cli.source.Driver
	}
	cli.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(cfg.Log.Level, true, cli.logOutput)
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

func (cli *CLI) loadDataset(ctx context.Context) (domain.Dataset, error) {
	cfg := cli.cfg
	if cfg == nil {
		return domain.Dataset{}, fmt.Errorf("configuration is not loaded")
	}
	return dataset.Open(ctx, cli.registry, cfg.Dataset)
}
