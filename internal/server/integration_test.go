package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptbench/internal/database"
	"promptbench/internal/encryption"
	"promptbench/internal/llm/client"
	"promptbench/internal/services"
	"promptbench/internal/tests/mocks"
)

func TestEndToEnd_CreateTestScenario(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	cipher, err := encryption.NewCipher("integration-secret")
	require.NoError(t, err)

	factory := &mocks.ChatFactoryMock{
		NewClientFunc: func(ctx context.Context, opts client.Options) (client.ChatClient, error) {
			return &mocks.ChatClientMock{
				GenerateFunc: func(ctx context.Context, systemPrompt, message string) (string, error) {
					return "Hello.", nil
				},
			}, nil
		},
	}
	svcs, err := services.NewDbServices(db, cipher, factory, services.Options{})
	require.NoError(t, err)

	router := NewRouter(Config{JWTSecret: testJWTSecret}, Deps{
		Tests:      svcs.Tests,
		Generation: svcs.Generation,
		ApiKeys:    svcs.ApiKeys,
		Models:     svcs.Models,
	})
	token, err := NewJWTTokenGen(testJWTSecret).GenerateToken(testUser, time.Hour)
	require.NoError(t, err)

	create := map[string]any{
		"name":         "T1",
		"systemPrompt": "You are terse.",
		"model":        "gpt-4o-mini-2024-07-18",
		"temperature":  0.5,
		"messages":     []map[string]any{{"content": "Hi"}},
	}

	// no key stored yet
	rec := doRequest(t, router, http.MethodPost, "/api/tests", create, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgMissingCredential, decode[errorResult](t, rec).Error)

	rec = doRequest(t, router, http.MethodPost, "/api/keys", map[string]any{"provider": "openai", "key": "sk-test"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/tests", create, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[IDResult](t, rec).ID

	rec = doRequest(t, router, http.MethodGet, "/api/tests/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	test := decode[TestVO](t, rec)
	require.Len(t, test.ModelTests, 1)
	require.Len(t, test.ModelTests[0].Messages, 1)
	msg := test.ModelTests[0].Messages[0]
	assert.Equal(t, "Hi", msg.Content)
	require.Len(t, msg.Responses, 1)
	assert.Equal(t, "Hello.", msg.Responses[0].Content)

	require.NotEmpty(t, factory.Calls)
	last := factory.Calls[len(factory.Calls)-1]
	assert.Equal(t, "sk-test", last.APIKey)
	assert.Equal(t, 0.5, last.Temperature)

	rec = doRequest(t, router, http.MethodPatch, "/api/tests/responses", map[string]any{
		"responseId": msg.Responses[0].ID, "notes": "fine",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[ResponseVO](t, rec)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "fine", *updated.Notes)
	assert.Nil(t, updated.Rating)

	rec = doRequest(t, router, http.MethodGet, "/api/tests", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]TestSummaryVO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].MessageCount)

	rec = doRequest(t, router, http.MethodDelete, "/api/tests/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodGet, "/api/tests/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndToEnd_UndecryptableKeyIsProviderFailure(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	factory := &mocks.ChatFactoryMock{
		NewClientFunc: func(ctx context.Context, opts client.Options) (client.ChatClient, error) {
			return &mocks.ChatClientMock{
				GenerateFunc: func(ctx context.Context, systemPrompt, message string) (string, error) {
					return "Hello.", nil
				},
			}, nil
		},
	}
	newRouter := func(secret string) http.Handler {
		cipher, err := encryption.NewCipher(secret)
		require.NoError(t, err)
		svcs, err := services.NewDbServices(db, cipher, factory, services.Options{})
		require.NoError(t, err)
		return NewRouter(Config{JWTSecret: testJWTSecret}, Deps{
			Tests:      svcs.Tests,
			Generation: svcs.Generation,
			ApiKeys:    svcs.ApiKeys,
			Models:     svcs.Models,
		})
	}
	token, err := NewJWTTokenGen(testJWTSecret).GenerateToken(testUser, time.Hour)
	require.NoError(t, err)

	rec := doRequest(t, newRouter("old-secret"), http.MethodPost, "/api/keys", map[string]any{"provider": "openai", "key": "sk-test"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	// rotated secret: the stored key no longer opens
	router := newRouter("new-secret")
	rec = doRequest(t, router, http.MethodPost, "/api/tests", map[string]any{
		"name":         "T1",
		"systemPrompt": "You are terse.",
		"model":        "gpt-4o-mini-2024-07-18",
		"temperature":  0.5,
		"messages":     []map[string]any{{"content": "Hi"}},
	}, token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[errorResult](t, rec)
	assert.Equal(t, msgProvider, body.Error)
	assert.NotContains(t, body.Error, "sk-test")
	assert.Empty(t, factory.Calls)

	rec = doRequest(t, router, http.MethodGet, "/api/tests", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
