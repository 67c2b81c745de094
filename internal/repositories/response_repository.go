package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

type ResponseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Response, error)
	// Update applies only the given column assignments and returns the fresh row.
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Response, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindByID(ctx context.Context, id string) (*models.Response, error) {
	var resp models.Response
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&resp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("response %s: %w", id, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("getting response %s: %w", id, err)
	}
	return &resp, nil
}

func (r *responseRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Response, error) {
	var out *models.Response
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resp models.Response
		if err := tx.Where("id = ?", id).Take(&resp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("response %s: %w", id, errs.ErrNotFound)
			}
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&resp).Updates(updates).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", id).Take(&resp).Error; err != nil {
				return err
			}
		}
		out = &resp
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("updating response %s: %w", id, err)
	}
	return out, nil
}
