package main

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/config"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/postgres"
)

type rootOptions struct {
	dbURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "hotelctl",
		Short:         "Maintenance commands for the hotel booking database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbURL, "db", "", "database URL (defaults to DATABASE_URL)")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newFixturesCmd(opts),
		newCreateAdminCmd(opts),
	)
	return cmd
}

func (o *rootOptions) connect() (*sqlx.DB, error) {
	url := o.dbURL
	if url == "" {
		url = config.LoadDatabaseURL()
	}
	if url == "" {
		return nil, errors.New("database URL required: pass --db or set DATABASE_URL")
	}
	return postgres.New(url)
}
