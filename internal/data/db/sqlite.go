package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	// Pure-Go driver registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const sqliteDriverName = "sqlite"

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSQLiteService opens dsn through the cgo-free modernc driver. SQLite has
// a single writer, so the pool is pinned to one connection; this also keeps
// an in-memory database alive for the lifetime of the handle.
func NewSQLiteService(logg *logger.Logger, dsn string, silent bool) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")
	dsn = withSQLitePragmas(strings.TrimSpace(dsn))

	gl := newGormLogger()
	if silent {
		gl = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn}), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func withSQLitePragmas(dsn string) string {
	if dsn == "" {
		dsn = "file:forcebook.db"
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
