package mocks

import (
	"context"

	"promptbench/internal/models"
)

type TestRepositoryMock struct {
	CreateTreeFunc    func(ctx context.Context, test *models.Test) error
	FindByIDFunc      func(ctx context.Context, id string) (*models.Test, error)
	FindTreeFunc      func(ctx context.Context, id string) (*models.Test, error)
	ListSummariesFunc func(ctx context.Context) ([]models.TestSummary, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *TestRepositoryMock) CreateTree(ctx context.Context, test *models.Test) error {
	if m.CreateTreeFunc != nil {
		return m.CreateTreeFunc(ctx, test)
	}
	return nil
}

func (m *TestRepositoryMock) FindByID(ctx context.Context, id string) (*models.Test, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *TestRepositoryMock) FindTree(ctx context.Context, id string) (*models.Test, error) {
	if m.FindTreeFunc != nil {
		return m.FindTreeFunc(ctx, id)
	}
	return nil, nil
}

func (m *TestRepositoryMock) ListSummaries(ctx context.Context) ([]models.TestSummary, error) {
	if m.ListSummariesFunc != nil {
		return m.ListSummariesFunc(ctx)
	}
	return []models.TestSummary{}, nil
}

func (m *TestRepositoryMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
