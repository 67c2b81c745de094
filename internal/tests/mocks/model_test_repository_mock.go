package mocks

import (
	"context"

	"promptbench/internal/models"
)

type ModelTestRepositoryMock struct {
	FindByIDFunc     func(ctx context.Context, id string) (*models.ModelTest, error)
	FirstForTestFunc func(ctx context.Context, testID string) (*models.ModelTest, error)
	CreateTreeFunc   func(ctx context.Context, mt *models.ModelTest) error
}

func (m *ModelTestRepositoryMock) FindByID(ctx context.Context, id string) (*models.ModelTest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *ModelTestRepositoryMock) FirstForTest(ctx context.Context, testID string) (*models.ModelTest, error) {
	if m.FirstForTestFunc != nil {
		return m.FirstForTestFunc(ctx, testID)
	}
	return nil, nil
}

func (m *ModelTestRepositoryMock) CreateTree(ctx context.Context, mt *models.ModelTest) error {
	if m.CreateTreeFunc != nil {
		return m.CreateTreeFunc(ctx, mt)
	}
	return nil
}
