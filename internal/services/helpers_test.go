package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promptbench/internal/database"
	"promptbench/internal/services"
)

const (
	openAIModel    = "gpt-4o-mini-2024-07-18"
	anthropicModel = "claude-3-5-haiku-latest"
	userID         = "user-1"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newRegistry(t *testing.T) services.ModelRegistry {
	t.Helper()
	registry, err := services.NewModelRegistry()
	require.NoError(t, err)
	return registry
}
