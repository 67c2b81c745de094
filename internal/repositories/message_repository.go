package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

type MessageRepository interface {
	// CreateWithResponses inserts the message and its responses atomically.
	CreateWithResponses(ctx context.Context, msg *models.Message) error
	SetIncluded(ctx context.Context, id string, included bool) error
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateWithResponses(ctx context.Context, msg *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(msg).Error
	})
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}
	return nil
}

func (r *messageRepository) SetIncluded(ctx context.Context, id string, included bool) error {
	res := r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Update("included", included)
	if res.Error != nil {
		return fmt.Errorf("updating message %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("message %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{})
	if res.Error != nil {
		return fmt.Errorf("deleting message %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("message %s: %w", id, errs.ErrNotFound)
	}
	return nil
}
