//go:build prod

package database

import (
	"os"
	"path/filepath"

	"github.com/gotomicro/ego/core/elog"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database lives under the user's data directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		elog.DefaultLogger.Warn("failed to get user config dir, using fallback", elog.FieldErr(err))
		return "promptbench.db"
	}

	appDir := filepath.Join(configDir, "promptbench")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		elog.DefaultLogger.Warn("failed to create app dir, using fallback", elog.FieldErr(err))
		return "promptbench.db"
	}

	return filepath.Join(appDir, "promptbench.db")
}

func IsDevelopment() bool {
	return false
}
