package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/downdetect"
	boards_controllers "taskboard/internal/features/boards/controllers"
	boards_services "taskboard/internal/features/boards/services"
	projects_controllers "taskboard/internal/features/projects/controllers"
	system_healthcheck "taskboard/internal/features/system/healthcheck"
	"taskboard/internal/features/task_logs"
	users_controllers "taskboard/internal/features/users/controllers"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/storage"
	"taskboard/internal/storage/schema"
	cache_utils "taskboard/internal/util/cache"
	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"
	_ "taskboard/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the schema, then serves the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.GetLogger()

		boards_services.SetupDependencies()

		if config.GetEnv().IsCacheEnabled() {
			if err := cache_utils.TestCacheConnection(); err != nil {
				log.Error("Cache connection test failed", "error", err)
				return err
			}
			log.Info("Cache connection test successful")
		}

		if err := schema.Migrate(storage.GetDb()); err != nil {
			return err
		}
		log.Info("Database migrations completed successfully")

		go generateSwaggerDocs(log)

		gin.SetMode(gin.ReleaseMode)
		ginApp := gin.Default()

		ginApp.Use(gzip.Gzip(
			gzip.DefaultCompression,
			gzip.WithExcludedExtensions(
				[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
			),
		))

		enableCors(ginApp)
		setUpRoutes(ginApp)

		return startServerWithGracefulShutdown(cmd.Context(), log, ginApp)
	},
}

func startServerWithGracefulShutdown(ctx context.Context, log *slog.Logger, app *gin.Engine) error {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              host + ":" + config.GetEnv().ServerPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		log.Error("listen:", "error", err)
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
		return err
	}

	log.Info("Server gracefully stopped")
	return nil
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	downdetect.GetDowndetectController().RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	authMiddleware := users_middleware.AuthMiddleware(users_services.GetUserService())

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	projects_controllers.GetMembershipController().RegisterRoutes(protected)
	boards_controllers.GetColumnController().RegisterRoutes(protected)
	boards_controllers.GetTaskController().RegisterRoutes(protected)
	task_logs.GetTaskLogController().RegisterRoutes(protected)
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
			},
		}))
	}
}
