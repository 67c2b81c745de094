package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

type TestRepository interface {
	// CreateTree inserts the test together with its model tests, messages and
	// responses in one transaction.
	CreateTree(ctx context.Context, test *models.Test) error
	FindByID(ctx context.Context, id string) (*models.Test, error)
	FindTree(ctx context.Context, id string) (*models.Test, error)
	ListSummaries(ctx context.Context) ([]models.TestSummary, error)
	Delete(ctx context.Context, id string) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func byCreatedAt(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func (r *testRepository) CreateTree(ctx context.Context, test *models.Test) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(test).Error
	})
	if err != nil {
		return fmt.Errorf("creating test: %w", err)
	}
	return nil
}

func (r *testRepository) FindByID(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("getting test %s: %w", id, err)
	}
	return &test, nil
}

func (r *testRepository) FindTree(ctx context.Context, id string) (*models.Test, error) {
	var test models.Test
	err := r.db.WithContext(ctx).
		Preload("ModelTests", byCreatedAt).
		Preload("ModelTests.Messages", byCreatedAt).
		Preload("ModelTests.Messages.Responses", byCreatedAt).
		Where("id = ?", id).
		Take(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("getting test %s: %w", id, err)
	}
	return &test, nil
}

func (r *testRepository) ListSummaries(ctx context.Context) ([]models.TestSummary, error) {
	var list []models.TestSummary
	err := r.db.WithContext(ctx).
		Table("tests").
		Select("tests.id, tests.name, tests.system_prompt, tests.created_at, COUNT(messages.id) AS message_count").
		Joins("LEFT JOIN model_tests ON model_tests.test_id = tests.id").
		Joins("LEFT JOIN messages ON messages.model_test_id = model_tests.id").
		Group("tests.id, tests.name, tests.system_prompt, tests.created_at").
		Order("tests.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing tests: %w", err)
	}
	return list, nil
}

func (r *testRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Test{})
	if res.Error != nil {
		return fmt.Errorf("deleting test %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("test %s: %w", id, errs.ErrNotFound)
	}
	return nil
}
