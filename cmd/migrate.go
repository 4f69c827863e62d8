package main

import (
	"taskboard/internal/storage"
	"taskboard/internal/storage/schema"
	"taskboard/internal/util/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()
		log.Info("Running database migrations...")

		if err := schema.Migrate(storage.GetDb()); err != nil {
			return err
		}

		log.Info("Database migrations completed successfully")
		return nil
	},
}
