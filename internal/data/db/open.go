package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver    string
	Postgres  PostgresConfig
	SQLiteDSN string
}

// Open connects to the configured backend and migrates the schema.
func Open(log *logger.Logger, cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverPostgres:
		var pg *PostgresService
		pg, err = NewPostgresService(log, cfg.Postgres)
		if err == nil {
			db = pg.DB()
		}
	case DriverSQLite, "":
		var lite *SQLiteService
		lite, err = NewSQLiteService(log, cfg.SQLiteDSN, false)
		if err == nil {
			db = lite.DB()
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := AutoMigrateAll(db); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
