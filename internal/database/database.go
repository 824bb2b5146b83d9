package database

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// registers the pure-go "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	if IsPostgres(dsn) {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using SQLite for local development", zap.String("dsn", dsn))

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
