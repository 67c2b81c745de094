package mocks

import (
	"context"

	"promptbench/internal/models"
)

type MessageRepositoryMock struct {
	CreateWithResponsesFunc func(ctx context.Context, msg *models.Message) error
	SetIncludedFunc         func(ctx context.Context, id string, included bool) error
	DeleteFunc              func(ctx context.Context, id string) error
}

func (m *MessageRepositoryMock) CreateWithResponses(ctx context.Context, msg *models.Message) error {
	if m.CreateWithResponsesFunc != nil {
		return m.CreateWithResponsesFunc(ctx, msg)
	}
	return nil
}

func (m *MessageRepositoryMock) SetIncluded(ctx context.Context, id string, included bool) error {
	if m.SetIncludedFunc != nil {
		return m.SetIncludedFunc(ctx, id, included)
	}
	return nil
}

func (m *MessageRepositoryMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
