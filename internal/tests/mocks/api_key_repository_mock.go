package mocks

import (
	"context"

	"promptbench/internal/models"
)

type ApiKeyRepositoryMock struct {
	FindByUserFunc        func(ctx context.Context, userID string) (*models.ApiKey, error)
	UpsertProviderKeyFunc func(ctx context.Context, userID string, provider models.Provider, encrypted string) error
	ClearProviderKeyFunc  func(ctx context.Context, userID string, provider models.Provider) error
}

func (m *ApiKeyRepositoryMock) FindByUser(ctx context.Context, userID string) (*models.ApiKey, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *ApiKeyRepositoryMock) UpsertProviderKey(ctx context.Context, userID string, provider models.Provider, encrypted string) error {
	if m.UpsertProviderKeyFunc != nil {
		return m.UpsertProviderKeyFunc(ctx, userID, provider, encrypted)
	}
	return nil
}

func (m *ApiKeyRepositoryMock) ClearProviderKey(ctx context.Context, userID string, provider models.Provider) error {
	if m.ClearProviderKeyFunc != nil {
		return m.ClearProviderKeyFunc(ctx, userID, provider)
	}
	return nil
}
