package main

import (
	"errors"

	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/logger"

	"github.com/spf13/cobra"
)

var (
	setUserActiveEmail    string
	setUserActiveIsActive bool
)

var setUserActiveCmd = &cobra.Command{
	Use:     "set-user-active",
	Short:   "Activate or deactivate an existing user",
	Example: `  taskboard set-user-active --email="some@email.com" --active=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()

		if setUserActiveEmail == "" {
			return errors.New("no email provided, please provide an email via --email flag")
		}

		err := users_services.GetUserService().ChangeUserActivityByEmail(
			cmd.Context(),
			setUserActiveEmail,
			setUserActiveIsActive,
		)
		if err != nil {
			log.Error("Failed to change user activity", "error", err)
			return err
		}

		log.Info("User activity changed", "email", setUserActiveEmail, "isActive", setUserActiveIsActive)
		return nil
	},
}

func init() {
	setUserActiveCmd.Flags().StringVar(&setUserActiveEmail, "email", "", "Email of the user")
	setUserActiveCmd.Flags().BoolVar(&setUserActiveIsActive, "active", false, "Whether the user can sign in")
}
