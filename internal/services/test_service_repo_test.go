package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptbench/internal/errs"
	"promptbench/internal/models"
	"promptbench/internal/services"
	"promptbench/internal/tests/mocks"
)

var errStore = errors.New("database is locked")

type repoFixture struct {
	tests      *mocks.TestRepositoryMock
	modelTests *mocks.ModelTestRepositoryMock
	messages   *mocks.MessageRepositoryMock
	responses  *mocks.ResponseRepositoryMock
	generator  *mocks.GenerationServiceMock
	svc        services.TestService
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()
	f := &repoFixture{
		tests:      &mocks.TestRepositoryMock{},
		modelTests: &mocks.ModelTestRepositoryMock{},
		messages:   &mocks.MessageRepositoryMock{},
		responses:  &mocks.ResponseRepositoryMock{},
		generator: &mocks.GenerationServiceMock{
			GenerateFunc: func(ctx context.Context, req services.GenerateRequest) (string, error) {
				return "re: " + req.Message, nil
			},
		},
	}
	f.svc = services.NewTestService(f.tests, f.modelTests, f.messages, f.responses,
		newRegistry(t), f.generator, services.TestServiceConfig{})
	return f
}

func TestTestService_CreateTest_StoreFailure(t *testing.T) {
	f := newRepoFixture(t)
	var stored *models.Test
	f.tests.CreateTreeFunc = func(ctx context.Context, test *models.Test) error {
		stored = test
		return errStore
	}

	id, err := f.svc.CreateTest(context.Background(), services.CreateTestRequest{
		Name:         "T1",
		SystemPrompt: "You are terse.",
		Model:        openAIModel,
		Temperature:  0.5,
		Messages:     []services.MessageInput{{Content: "Hi"}, {Content: "Bye"}},
	}, userID)
	assert.Empty(t, id)
	assert.ErrorIs(t, err, errStore)
	for _, sentinel := range []error{errs.ErrValidation, errs.ErrNotFound, errs.ErrProvider, errs.ErrMissingCredential} {
		assert.NotErrorIs(t, err, sentinel)
	}

	// the tree is complete before it is handed to the store
	require.NotNil(t, stored)
	require.Len(t, stored.ModelTests, 1)
	require.Len(t, stored.ModelTests[0].Messages, 2)
	for _, msg := range stored.ModelTests[0].Messages {
		require.Len(t, msg.Responses, 1)
		assert.Equal(t, "re: "+msg.Content, msg.Responses[0].Content)
	}
}

func TestTestService_CreateTest_GenerationFailureSkipsStore(t *testing.T) {
	f := newRepoFixture(t)
	f.generator.GenerateFunc = func(ctx context.Context, req services.GenerateRequest) (string, error) {
		return "", errs.ErrProvider
	}
	f.tests.CreateTreeFunc = func(ctx context.Context, test *models.Test) error {
		t.Fatal("nothing should be stored when generation fails")
		return nil
	}

	_, err := f.svc.CreateTest(context.Background(), services.CreateTestRequest{
		Name: "T1", SystemPrompt: "p", Model: openAIModel, Temperature: 0.5,
		Messages: []services.MessageInput{{Content: "Hi"}},
	}, userID)
	assert.ErrorIs(t, err, errs.ErrProvider)
}

func TestTestService_AddModelTest_CopiesSourceMessages(t *testing.T) {
	testcases := []struct {
		name        string
		temperature *float64
		storeErr    error
		wantTemp    float64
	}{
		{name: "inherits temperature", wantTemp: 0.3},
		{name: "explicit temperature", temperature: lo.ToPtr(0.9), wantTemp: 0.9},
		{name: "store failure", storeErr: errStore, wantTemp: 0.3},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRepoFixture(t)
			f.tests.FindByIDFunc = func(ctx context.Context, id string) (*models.Test, error) {
				return &models.Test{ID: id, SystemPrompt: "You are terse."}, nil
			}
			f.modelTests.FirstForTestFunc = func(ctx context.Context, testID string) (*models.ModelTest, error) {
				return &models.ModelTest{ID: "mt-src", TestID: testID, Model: openAIModel, Temperature: 0.3, Messages: []models.Message{
					{ID: "m-1", Content: "Hi", Included: true},
					{ID: "m-2", Content: "Bye", Included: false},
				}}, nil
			}
			var stored *models.ModelTest
			f.modelTests.CreateTreeFunc = func(ctx context.Context, mt *models.ModelTest) error {
				stored = mt
				return tc.storeErr
			}

			id, err := f.svc.AddModelTest(context.Background(), services.AddModelTestRequest{
				TestID: "test-1", Model: anthropicModel, Temperature: tc.temperature,
			}, userID)
			require.NotNil(t, stored)
			if tc.storeErr != nil {
				assert.ErrorIs(t, err, tc.storeErr)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.ID, id)
			assert.Equal(t, "test-1", stored.TestID)
			assert.Equal(t, anthropicModel, stored.Model)
			assert.Equal(t, tc.wantTemp, stored.Temperature)
			require.Len(t, stored.Messages, 2)
			assert.Equal(t, "Hi", stored.Messages[0].Content)
			assert.True(t, stored.Messages[0].Included)
			assert.Equal(t, "Bye", stored.Messages[1].Content)
			assert.False(t, stored.Messages[1].Included)
			assert.NotEqual(t, "m-1", stored.Messages[0].ID)
			assert.True(t, stored.Messages[0].CreatedAt.Before(stored.Messages[1].CreatedAt))
			for _, msg := range stored.Messages {
				require.Len(t, msg.Responses, 1)
				assert.Equal(t, anthropicModel, msg.Responses[0].Model)
			}
		})
	}
}

func TestTestService_AddMessage_StoreFailure(t *testing.T) {
	f := newRepoFixture(t)
	f.modelTests.FindByIDFunc = func(ctx context.Context, id string) (*models.ModelTest, error) {
		return &models.ModelTest{ID: id, TestID: "test-1", Model: openAIModel, Temperature: 0.2}, nil
	}
	f.tests.FindByIDFunc = func(ctx context.Context, id string) (*models.Test, error) {
		return &models.Test{ID: id, SystemPrompt: "You are terse."}, nil
	}
	var got services.GenerateRequest
	f.generator.GenerateFunc = func(ctx context.Context, req services.GenerateRequest) (string, error) {
		got = req
		return "Hello.", nil
	}
	f.messages.CreateWithResponsesFunc = func(ctx context.Context, msg *models.Message) error {
		return errStore
	}

	msg, resp, err := f.svc.AddMessage(context.Background(), "mt-1", "Hi", userID)
	assert.ErrorIs(t, err, errStore)
	assert.Nil(t, msg)
	assert.Nil(t, resp)
	assert.Equal(t, "You are terse.", got.SystemPrompt)
	assert.Equal(t, 0.2, got.Temperature)
}

func TestTestService_MessageCommands(t *testing.T) {
	f := newRepoFixture(t)
	var deleted string
	var toggled struct {
		id       string
		included bool
	}
	f.messages.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}
	f.messages.SetIncludedFunc = func(ctx context.Context, id string, included bool) error {
		toggled.id, toggled.included = id, included
		return errs.ErrNotFound
	}

	require.NoError(t, f.svc.DeleteMessage(context.Background(), "m-1"))
	assert.Equal(t, "m-1", deleted)

	err := f.svc.SetMessageIncluded(context.Background(), "m-2", false)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "m-2", toggled.id)
	assert.False(t, toggled.included)
}

func TestTestService_UpdateResponse_Repository(t *testing.T) {
	good := models.RatingGood
	notes := "concise"
	testcases := []struct {
		name        string
		req         services.UpdateResponseRequest
		wantUpdates map[string]interface{}
	}{
		{name: "no fields reads current row", req: services.UpdateResponseRequest{ResponseID: "r-1"}},
		{name: "rating only", req: services.UpdateResponseRequest{ResponseID: "r-1", Rating: &good},
			wantUpdates: map[string]interface{}{"rating": "good"}},
		{name: "rating and notes", req: services.UpdateResponseRequest{ResponseID: "r-1", Rating: &good, Notes: &notes},
			wantUpdates: map[string]interface{}{"rating": "good", "notes": "concise"}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			f := newRepoFixture(t)
			var found, updated bool
			var gotUpdates map[string]interface{}
			f.responses.FindByIDFunc = func(ctx context.Context, id string) (*models.Response, error) {
				found = true
				return &models.Response{ID: id, Content: "Hello."}, nil
			}
			f.responses.UpdateFunc = func(ctx context.Context, id string, updates map[string]interface{}) (*models.Response, error) {
				updated = true
				gotUpdates = updates
				return &models.Response{ID: id, Content: "Hello."}, nil
			}

			resp, err := f.svc.UpdateResponse(context.Background(), tc.req)
			require.NoError(t, err)
			assert.Equal(t, "r-1", resp.ID)
			assert.Equal(t, tc.wantUpdates == nil, found)
			assert.Equal(t, tc.wantUpdates != nil, updated)
			if tc.wantUpdates != nil {
				assert.Equal(t, tc.wantUpdates, gotUpdates)
			}
		})
	}
}

func TestTestService_ListTests_StoreFailure(t *testing.T) {
	f := newRepoFixture(t)
	f.tests.ListSummariesFunc = func(ctx context.Context) ([]models.TestSummary, error) {
		return nil, errStore
	}
	_, err := f.svc.ListTests(context.Background())
	assert.ErrorIs(t, err, errStore)
}
