package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promptbench/internal/database"
	"promptbench/internal/errs"
	"promptbench/internal/models"
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

func sampleTree(messages ...string) *models.Test {
	base := time.Now()
	mt := models.ModelTest{Model: "gpt-4o-mini-2024-07-18", Temperature: 0.5, CreatedAt: base}
	for i, content := range messages {
		mt.Messages = append(mt.Messages, models.Message{
			Content:   content,
			Included:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
			Responses: []models.Response{{Model: mt.Model, Content: "re: " + content}},
		})
	}
	return &models.Test{Name: "T1", SystemPrompt: "You are terse.", ModelTests: []models.ModelTest{mt}}
}

func TestTestRepository_CreateAndFindTree(t *testing.T) {
	ctx := context.Background()
	repo := NewTestRepository(newTestDB(t))

	test := sampleTree("Hi", "Hello", "Hey")
	require.NoError(t, repo.CreateTree(ctx, test))
	require.NotEmpty(t, test.ID)

	got, err := repo.FindTree(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, got.ModelTests, 1)
	msgs := got.ModelTests[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"Hi", "Hello", "Hey"}, []string{msgs[0].Content, msgs[1].Content, msgs[2].Content})
	for _, m := range msgs {
		require.Len(t, m.Responses, 1)
		assert.Equal(t, "re: "+m.Content, m.Responses[0].Content)
	}
}

func TestTestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewTestRepository(newTestDB(t))

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = repo.FindTree(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), errs.ErrNotFound)
}

func TestTestRepository_ListSummaries(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTestRepository(db)

	first := sampleTree("a", "b")
	require.NoError(t, repo.CreateTree(ctx, first))
	second := &models.Test{Name: "empty", SystemPrompt: "p", CreatedAt: time.Now().Add(time.Second)}
	require.NoError(t, repo.CreateTree(ctx, second))

	list, err := repo.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, int64(0), list[0].MessageCount)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, int64(2), list[1].MessageCount)
}

func TestTestRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTestRepository(db)

	test := sampleTree("Hi", "Hello")
	require.NoError(t, repo.CreateTree(ctx, test))
	require.NoError(t, repo.Delete(ctx, test.ID))

	for _, m := range []interface{}{&models.Test{}, &models.ModelTest{}, &models.Message{}, &models.Response{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestModelTestRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tests := NewTestRepository(db)
	repo := NewModelTestRepository(db)

	test := sampleTree("Hi", "Hello")
	require.NoError(t, tests.CreateTree(ctx, test))

	first, err := repo.FirstForTest(ctx, test.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Len(t, first.Messages, 2)

	none, err := repo.FirstForTest(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, none)

	clone := &models.ModelTest{
		TestID:      test.ID,
		Model:       "claude-3-5-haiku-latest",
		Temperature: 0.2,
		CreatedAt:   time.Now().Add(time.Second),
		Messages: []models.Message{{
			Content:   "Hi",
			Included:  false,
			Responses: []models.Response{{Model: "claude-3-5-haiku-latest", Content: "yo"}},
		}},
	}
	require.NoError(t, repo.CreateTree(ctx, clone))

	got, err := repo.FindByID(ctx, clone.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.2, got.Temperature)

	again, err := repo.FirstForTest(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	tree, err := tests.FindTree(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, tree.ModelTests, 2)
	assert.False(t, tree.ModelTests[1].Messages[0].Included)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMessageRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tests := NewTestRepository(db)
	repo := NewMessageRepository(db)

	test := sampleTree("Hi")
	require.NoError(t, tests.CreateTree(ctx, test))
	mtID := test.ModelTests[0].ID

	msg := &models.Message{
		ModelTestID: mtID,
		Content:     "extra",
		Included:    true,
		Responses:   []models.Response{{Model: "gpt-4o-mini-2024-07-18", Content: "ok"}},
	}
	require.NoError(t, repo.CreateWithResponses(ctx, msg))
	require.NotEmpty(t, msg.Responses[0].ID)
	assert.Equal(t, msg.ID, msg.Responses[0].MessageID)

	require.NoError(t, repo.SetIncluded(ctx, msg.ID, false))
	var stored models.Message
	require.NoError(t, db.Where("id = ?", msg.ID).Take(&stored).Error)
	assert.False(t, stored.Included)

	require.NoError(t, repo.Delete(ctx, msg.ID))
	var count int64
	require.NoError(t, db.Model(&models.Response{}).Where("message_id = ?", msg.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(ctx, msg.ID), errs.ErrNotFound)
	assert.ErrorIs(t, repo.SetIncluded(ctx, "missing", true), errs.ErrNotFound)
}

func TestResponseRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tests := NewTestRepository(db)
	repo := NewResponseRepository(db)

	test := sampleTree("Hi")
	require.NoError(t, tests.CreateTree(ctx, test))
	respID := test.ModelTests[0].Messages[0].Responses[0].ID

	updated, err := repo.Update(ctx, respID, map[string]interface{}{"notes": "too long"})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "too long", *updated.Notes)
	assert.Nil(t, updated.Rating)

	updated, err = repo.Update(ctx, respID, map[string]interface{}{"rating": models.RatingGood})
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, models.RatingGood, *updated.Rating)
	assert.Equal(t, "too long", *updated.Notes)

	_, err = repo.Update(ctx, "missing", map[string]interface{}{"notes": "x"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestApiKeyRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewApiKeyRepository(db)

	none, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, repo.UpsertProviderKey(ctx, "u1", models.ProviderOpenAI, "enc-openai"))
	require.NoError(t, repo.UpsertProviderKey(ctx, "u1", models.ProviderGoogle, "enc-google"))
	require.NoError(t, repo.UpsertProviderKey(ctx, "u1", models.ProviderOpenAI, "enc-openai-2"))

	var rows int64
	require.NoError(t, db.Model(&models.ApiKey{}).Where("user_id = ?", "u1").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	key, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "enc-openai-2", key.Encrypted(models.ProviderOpenAI))
	assert.Equal(t, "enc-google", key.Encrypted(models.ProviderGoogle))
	assert.Equal(t, "", key.Encrypted(models.ProviderAnthropic))

	require.NoError(t, repo.ClearProviderKey(ctx, "u1", models.ProviderOpenAI))
	key, err = repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "", key.Encrypted(models.ProviderOpenAI))
	assert.Equal(t, "enc-google", key.Encrypted(models.ProviderGoogle))

	assert.ErrorIs(t, repo.UpsertProviderKey(ctx, "u1", "mistral", "x"), errs.ErrUnknownProvider)
}
