package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/postgres"
)

func newFixturesCmd(opts *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Load or dump reference and sample data as JSON files",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "fixtures", "directory holding one <table>.json per table")

	cmd.AddCommand(&cobra.Command{
		Use:   "load",
		Short: "Insert fixture rows, skipping rows whose id already exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			store := postgres.NewFixtureStore(db)
			for _, table := range postgres.FixtureTables {
				rows, err := os.ReadFile(fixturePath(dir, table))
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				if err != nil {
					return err
				}
				if !json.Valid(rows) {
					return fmt.Errorf("%s: invalid JSON", fixturePath(dir, table))
				}
				n, err := store.Load(cmd.Context(), table, rows)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d rows loaded\n", table, n)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Write every fixture table to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			store := postgres.NewFixtureStore(db)
			for _, table := range postgres.FixtureTables {
				rows, err := store.Dump(cmd.Context(), table)
				if err != nil {
					return fmt.Errorf("dump %s: %w", table, err)
				}
				if err := os.WriteFile(fixturePath(dir, table), rows, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s written\n", table)
			}
			return nil
		},
	})
	return cmd
}

func fixturePath(dir, table string) string {
	return filepath.Join(dir, table+".json")
}
