package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

type ModelTestRepository interface {
	FindByID(ctx context.Context, id string) (*models.ModelTest, error)
	// FirstForTest returns the oldest model test of a test with its messages.
	FirstForTest(ctx context.Context, testID string) (*models.ModelTest, error)
	CreateTree(ctx context.Context, mt *models.ModelTest) error
}

type modelTestRepository struct {
	db *gorm.DB
}

func NewModelTestRepository(db *gorm.DB) ModelTestRepository {
	return &modelTestRepository{db: db}
}

func (r *modelTestRepository) FindByID(ctx context.Context, id string) (*models.ModelTest, error) {
	var mt models.ModelTest
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&mt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("model test %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("getting model test %s: %w", id, err)
	}
	return &mt, nil
}

func (r *modelTestRepository) FirstForTest(ctx context.Context, testID string) (*models.ModelTest, error) {
	var mt models.ModelTest
	err := byCreatedAt(r.db.WithContext(ctx)).
		Preload("Messages", byCreatedAt).
		Where("test_id = ?", testID).
		First(&mt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting first model test of %s: %w", testID, err)
	}
	return &mt, nil
}

func (r *modelTestRepository) CreateTree(ctx context.Context, mt *models.ModelTest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(mt).Error
	})
	if err != nil {
		return fmt.Errorf("creating model test: %w", err)
	}
	return nil
}
