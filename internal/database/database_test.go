package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptbench/internal/models"
)

func TestSqliteDSN(t *testing.T) {
	testcases := []struct {
		name string
		path string
		want string
	}{
		{
			name: "plain path",
			path: "promptbench.db",
			want: "promptbench.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON",
		},
		{
			name: "path with query",
			path: "file:x?mode=memory",
			want: "file:x?mode=memory&_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sqliteDSN(tc.path))
		})
	}
}

func TestInit_UnsupportedDriver(t *testing.T) {
	_, err := Init(Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestOpenInMemory_CascadesDeletes(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	test := models.Test{
		Name:         "T1",
		SystemPrompt: "You are terse.",
		ModelTests: []models.ModelTest{{
			Model:       "gpt-4o-mini-2024-07-18",
			Temperature: 0.5,
			Messages: []models.Message{{
				Content:   "Hi",
				Included:  true,
				Responses: []models.Response{{Model: "gpt-4o-mini-2024-07-18", Content: "Hello."}},
			}},
		}},
	}
	require.NoError(t, db.Create(&test).Error)

	require.NoError(t, db.Delete(&models.Test{}, "id = ?", test.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.ModelTest{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Response{}).Count(&count).Error)
	assert.Zero(t, count)
}
