package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"promptbench/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds DB configuration
type Config struct {
	Driver   string
	DSN      string
	LogLevel logger.LogLevel
}

// Init opens the configured database and runs migrations
func Init(cfg Config) (*gorm.DB, error) {
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Warn
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.DSN == "" && cfg.Driver == DriverSQLite {
		cfg.DSN = GetDefaultDBPath()
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		loggerWriter{},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  cfg.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// A single connection prevents "database is locked" errors
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		if err := WaitForDB(sqlDB); err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(cfg.DSN)), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path, sep)
}

// WaitForDB pings a networked database with exponential backoff until it answers.
func WaitForDB(sqlDB *sql.DB) error {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, 10*time.Second, 10)
	if err != nil {
		return err
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("database not reachable: %w", err)
		}
		elog.DefaultLogger.Warn("database not ready, retrying", elog.FieldErr(err), elog.Any("backoff", next.String()))
		time.Sleep(next)
	}
}

// migrate runs all automigrations. Keep the model list in one place.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Test{},
		&models.ModelTest{},
		&models.Message{},
		&models.Response{},
		&models.ApiKey{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// loggerWriter satisfies the gorm logger Writer interface and forwards to elog.
type loggerWriter struct{}

func (loggerWriter) Printf(format string, args ...interface{}) {
	elog.DefaultLogger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)), elog.FieldComponent("gorm"))
}
