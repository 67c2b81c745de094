package mocks

import (
	"context"

	"promptbench/internal/models"
)

type ResponseRepositoryMock struct {
	FindByIDFunc func(ctx context.Context, id string) (*models.Response, error)
	UpdateFunc   func(ctx context.Context, id string, updates map[string]interface{}) (*models.Response, error)
}

func (m *ResponseRepositoryMock) FindByID(ctx context.Context, id string) (*models.Response, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *ResponseRepositoryMock) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Response, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil, nil
}
