package providers

import (
	"fmt"
	"gemscout/internal/structures"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSQLitePath = "gemscout.db"

func NewDatabaseProvider(conf *structures.Config, logger Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Store.Driver {
	case "postgres":
		dialector = postgres.Open(conf.Store.DSN)
	case "sqlite":
		dsn := conf.Store.DSN
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", conf.Store.Driver)
	}

	logLevel := gormlogger.Silent
	if conf.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", conf.Store.Driver, err)
	}
	logger.Infof(TypeApp, "Cache store: %s database opened", conf.Store.Driver)
	return db, nil
}
