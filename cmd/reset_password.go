package main

import (
	"errors"

	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/util/logger"

	"github.com/spf13/cobra"
)

var (
	resetPasswordEmail       string
	resetPasswordNewPassword string
)

var resetPasswordCmd = &cobra.Command{
	Use:     "reset-password",
	Short:   "Set a new password for an existing user",
	Example: `  taskboard reset-password --email="some@email.com" --new-password="newpassword123"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()

		if resetPasswordEmail == "" {
			return errors.New("no email provided, please provide an email via --email flag")
		}

		log.Info("Resetting password...", "email", resetPasswordEmail)

		err := users_services.GetUserService().ChangeUserPasswordByEmail(
			cmd.Context(),
			resetPasswordEmail,
			resetPasswordNewPassword,
		)
		if err != nil {
			log.Error("Failed to reset password", "error", err)
			return err
		}

		log.Info("Password reset successfully")
		return nil
	},
}

func init() {
	resetPasswordCmd.Flags().StringVar(&resetPasswordEmail, "email", "", "Email of the user to reset password")
	resetPasswordCmd.Flags().StringVar(&resetPasswordNewPassword, "new-password", "", "New password for the user")
	_ = resetPasswordCmd.MarkFlagRequired("new-password")
}
