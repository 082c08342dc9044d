package commands

import (
	"fmt"

	"github.com/de-tools/consumption-atlas/pkg/store/duckdb"
	"github.com/de-tools/consumption-atlas/pkg/store/duckdb/consumption"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	dbPath  string
	threads int
	load    DatasetLoader
}

func NewImportCmd(load DatasetLoader) *cobra.Command {
	ic := &ImportCmd{load: load}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the dataset into a DuckDB database",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", "", "Path of the DuckDB database file")
	cmd.Flags().IntVar(&ic.threads, "threads", 0, "DuckDB worker threads (0 uses the default)")

	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	ds, err := ic.load(ctx)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.dbPath, Threads: ic.threads})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close duckdb")
		}
	}()

	s, err := consumption.NewStore(db)
	if err != nil {
		return err
	}
	if err := consumption.Import(ctx, db, s, ds); err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records (%d-%d) into %s\n",
		stats.RecordsCount, stats.MinYear.Int64, stats.MaxYear.Int64, ic.dbPath)
	return nil
}
