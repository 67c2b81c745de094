package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenInMemory opens an isolated, migrated in-memory SQLite database. Used by tests.
func OpenInMemory() (*gorm.DB, error) {
	return Init(Config{
		Driver:   DriverSQLite,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: logger.Silent,
	})
}
