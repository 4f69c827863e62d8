package storage

import (
	"os"
	"sync"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the root database handle. Services open their own
// transactions from it and hand the transaction to repositories, so it is
// never used for writes directly.
func GetDb() *gorm.DB {
	once.Do(openDb)
	return db
}

func openDb() {
	log := logger.GetLogger()
	env := config.GetEnv()

	var dialector gorm.Dialector
	switch env.DatabaseDriver {
	case config.DatabaseDriverSqlite:
		dialector = sqlite.Open(env.DatabaseDsn)
	default:
		dialector = postgres.Open(env.DatabaseDsn)
	}

	gormDb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Error("Failed to connect to database", "driver", env.DatabaseDriver, "error", err)
		os.Exit(1)
	}

	sqlDb, err := gormDb.DB()
	if err != nil {
		log.Error("Failed to get database connection pool", "error", err)
		os.Exit(1)
	}

	if env.DatabaseDriver == config.DatabaseDriverSqlite {
		// sqlite serializes writers anyway; a single connection keeps the
		// shared in-memory database alive and avoids "database is locked"
		sqlDb.SetMaxOpenConns(1)
		sqlDb.SetConnMaxLifetime(0)
	} else {
		sqlDb.SetMaxOpenConns(25)
		sqlDb.SetMaxIdleConns(5)
		sqlDb.SetConnMaxLifetime(30 * time.Minute)
	}

	db = gormDb
}
