package mocks

import (
	"context"

	"promptbench/internal/models"
	"promptbench/internal/services"
)

type CredentialResolverMock struct {
	GetDecryptedKeyFunc func(ctx context.Context, userID string, provider models.Provider) (string, error)
}

func (m *CredentialResolverMock) GetDecryptedKey(ctx context.Context, userID string, provider models.Provider) (string, error) {
	if m.GetDecryptedKeyFunc != nil {
		return m.GetDecryptedKeyFunc(ctx, userID, provider)
	}
	return "", nil
}

type GenerationServiceMock struct {
	GenerateFunc           func(ctx context.Context, req services.GenerateRequest) (string, error)
	GenerateCandidatesFunc func(ctx context.Context, req services.CandidateRequest) ([]models.CandidateMessage, error)
}

func (m *GenerationServiceMock) Generate(ctx context.Context, req services.GenerateRequest) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "", nil
}

func (m *GenerationServiceMock) GenerateCandidates(ctx context.Context, req services.CandidateRequest) ([]models.CandidateMessage, error) {
	if m.GenerateCandidatesFunc != nil {
		return m.GenerateCandidatesFunc(ctx, req)
	}
	return []models.CandidateMessage{}, nil
}

type ApiKeyServiceMock struct {
	CredentialResolverMock
	StoreKeyFunc  func(ctx context.Context, userID string, provider models.Provider, plaintext string) error
	DeleteKeyFunc func(ctx context.Context, userID string, provider models.Provider) error
	StatusFunc    func(ctx context.Context, userID string) (*models.ApiKeyStatus, error)
}

func (m *ApiKeyServiceMock) StoreKey(ctx context.Context, userID string, provider models.Provider, plaintext string) error {
	if m.StoreKeyFunc != nil {
		return m.StoreKeyFunc(ctx, userID, provider, plaintext)
	}
	return nil
}

func (m *ApiKeyServiceMock) DeleteKey(ctx context.Context, userID string, provider models.Provider) error {
	if m.DeleteKeyFunc != nil {
		return m.DeleteKeyFunc(ctx, userID, provider)
	}
	return nil
}

func (m *ApiKeyServiceMock) Status(ctx context.Context, userID string) (*models.ApiKeyStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, userID)
	}
	return &models.ApiKeyStatus{}, nil
}

type TestServiceMock struct {
	CreateTestFunc         func(ctx context.Context, req services.CreateTestRequest, userID string) (string, error)
	AddModelTestFunc       func(ctx context.Context, req services.AddModelTestRequest, userID string) (string, error)
	AddMessageFunc         func(ctx context.Context, modelTestID, content, userID string) (*models.Message, *models.Response, error)
	ListTestsFunc          func(ctx context.Context) ([]models.TestSummary, error)
	GetTestFunc            func(ctx context.Context, id string) (*models.Test, error)
	DeleteTestFunc         func(ctx context.Context, id string) error
	DeleteMessageFunc      func(ctx context.Context, id string) error
	SetMessageIncludedFunc func(ctx context.Context, id string, included bool) error
	UpdateResponseFunc     func(ctx context.Context, req services.UpdateResponseRequest) (*models.Response, error)
}

func (m *TestServiceMock) CreateTest(ctx context.Context, req services.CreateTestRequest, userID string) (string, error) {
	if m.CreateTestFunc != nil {
		return m.CreateTestFunc(ctx, req, userID)
	}
	return "", nil
}

func (m *TestServiceMock) AddModelTest(ctx context.Context, req services.AddModelTestRequest, userID string) (string, error) {
	if m.AddModelTestFunc != nil {
		return m.AddModelTestFunc(ctx, req, userID)
	}
	return "", nil
}

func (m *TestServiceMock) AddMessage(ctx context.Context, modelTestID, content, userID string) (*models.Message, *models.Response, error) {
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(ctx, modelTestID, content, userID)
	}
	return nil, nil, nil
}

func (m *TestServiceMock) ListTests(ctx context.Context) ([]models.TestSummary, error) {
	if m.ListTestsFunc != nil {
		return m.ListTestsFunc(ctx)
	}
	return []models.TestSummary{}, nil
}

func (m *TestServiceMock) GetTest(ctx context.Context, id string) (*models.Test, error) {
	if m.GetTestFunc != nil {
		return m.GetTestFunc(ctx, id)
	}
	return nil, nil
}

func (m *TestServiceMock) DeleteTest(ctx context.Context, id string) error {
	if m.DeleteTestFunc != nil {
		return m.DeleteTestFunc(ctx, id)
	}
	return nil
}

func (m *TestServiceMock) DeleteMessage(ctx context.Context, id string) error {
	if m.DeleteMessageFunc != nil {
		return m.DeleteMessageFunc(ctx, id)
	}
	return nil
}

func (m *TestServiceMock) SetMessageIncluded(ctx context.Context, id string, included bool) error {
	if m.SetMessageIncludedFunc != nil {
		return m.SetMessageIncludedFunc(ctx, id, included)
	}
	return nil
}

func (m *TestServiceMock) UpdateResponse(ctx context.Context, req services.UpdateResponseRequest) (*models.Response, error) {
	if m.UpdateResponseFunc != nil {
		return m.UpdateResponseFunc(ctx, req)
	}
	return nil, nil
}
