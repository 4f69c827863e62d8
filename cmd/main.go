package main

import (
	"os"

	"taskboard/internal/util/logger"

	"github.com/spf13/cobra"
)

// @title Taskboard Backend API
// @version 1.0
// @description API for Taskboard: projects, columns, tasks and their movement log
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
var rootCmd = &cobra.Command{
	Use:           "taskboard",
	Short:         "Taskboard backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, resetPasswordCmd, setUserActiveCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.GetLogger().Error("Command failed", "error", err)
		os.Exit(1)
	}
}
