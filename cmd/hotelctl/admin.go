package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
)

func newCreateAdminCmd(opts *rootOptions) *cobra.Command {
	var in service.RegisterInput
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator, or grant the admin role to an existing username",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Password2 == "" {
				in.Password2 = in.Password
			}
			db, err := opts.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			// Only account creation is used, so no token manager is needed.
			auth := service.NewAuthService(postgres.NewUserRepo(db), postgres.NewRoleRepo(db), postgres.NewSessionRepo(db), nil, "")
			user, err := auth.CreateAdmin(cmd.Context(), in)
			if err != nil {
				var vErr *service.ValidationError
				if errors.As(err, &vErr) {
					return fmt.Errorf("%s: %s", vErr.Field, vErr.Message)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s (%s) ready\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address (new accounts only)")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (new accounts only)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
