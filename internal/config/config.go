package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSqlite   = "sqlite"

	// used when tests run without a .env file
	testingDatabaseDsn = "file::memory:?cache=shared&_foreign_keys=on"
)

type EnvVariables struct {
	IsTesting       bool
	BackendRootPath string

	DatabaseDriver string            `env:"DATABASE_DRIVER"          env-default:"postgres"`
	DatabaseDsn    string            `env:"DATABASE_DSN"`
	EnvMode        env_utils.EnvMode `env:"ENV_MODE"`
	ServerPort     string            `env:"SERVER_PORT"              env-default:"4005"`

	AccessTokenTtlMinutes int `env:"ACCESS_TOKEN_TTL_MINUTES" env-default:"30"`

	// cache, disabled when VALKEY_HOST is empty
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"              env-default:"6379"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func (e EnvVariables) IsCacheEnabled() bool {
	return e.ValkeyHost != ""
}

func loadEnvVariables() {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded && !env.IsTesting {
		log.Warn("No .env file found, using process environment only")
	}

	isTesting := env.IsTesting
	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}
	env.IsTesting = isTesting
	env.BackendRootPath = backendRoot

	if env.IsTesting && env.DatabaseDsn == "" {
		env.DatabaseDriver = DatabaseDriverSqlite
		env.DatabaseDsn = testingDatabaseDsn
		env.EnvMode = env_utils.EnvModeDevelopment
	}

	if env.DatabaseDriver != DatabaseDriverPostgres && env.DatabaseDriver != DatabaseDriverSqlite {
		log.Error("DATABASE_DRIVER is invalid", "driver", env.DatabaseDriver)
		os.Exit(1)
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode == "" {
		log.Error("ENV_MODE is empty")
		os.Exit(1)
	}
	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.AccessTokenTtlMinutes <= 0 {
		log.Error("ACCESS_TOKEN_TTL_MINUTES must be greater than 0")
		os.Exit(1)
	}

	if env.ValkeyHost != "" && env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!")
}
