package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/de-tools/consumption-atlas/pkg/logging"
	"github.com/de-tools/consumption-atlas/pkg/metrics"
	"github.com/de-tools/consumption-atlas/pkg/render/png"
	"github.com/de-tools/consumption-atlas/pkg/server"
	"github.com/de-tools/consumption-atlas/pkg/services/config"
	"github.com/de-tools/consumption-atlas/pkg/services/dashboard"
	"github.com/de-tools/consumption-atlas/pkg/store/dataset"
	"github.com/de-tools/consumption-atlas/pkg/store/sources"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for Consumption Atlas",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults and environment are used when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	ds, err := dataset.Open(ctx, sources.NewRegistry(), cfg.Dataset)
	if err != nil {
		event := logger.Error().Err(err).Str("path", cfg.Dataset.Path)
		if errors.Is(err, dataset.ErrNotFound) {
			event.Msg("dataset file is missing, place it next to the binary or set dataset.path")
		} else {
			event.Msg("failed to load dataset")
		}
		os.Exit(1)
	}

	m := metrics.New()
	svc := dashboard.NewService(ds, dashboard.WithMetrics(m))

	opts := svc.Options(ctx)
	logger.Info().
		Int("records", ds.Len()).
		Int("min_year", opts.MinYear).
		Int("max_year", opts.MaxYear).
		Msg("dataset loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Debug:           cfg.Server.Debug,
		Dependencies: server.Dependencies{
			Dashboard: svc,
			Renderer:  png.NewRenderer(),
			Metrics:   m,
			Logger:    logger,
		},
	})

	return api.Start()
}
