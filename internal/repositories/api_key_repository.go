package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"promptbench/internal/errs"
	"promptbench/internal/models"
)

type ApiKeyRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.ApiKey, error)
	UpsertProviderKey(ctx context.Context, userID string, provider models.Provider, encrypted string) error
	ClearProviderKey(ctx context.Context, userID string, provider models.Provider) error
}

type apiKeyRepository struct {
	db *gorm.DB
}

func NewApiKeyRepository(db *gorm.DB) ApiKeyRepository {
	return &apiKeyRepository{db: db}
}

// FindByUser returns nil, nil when the user has never stored a key.
func (r *apiKeyRepository) FindByUser(ctx context.Context, userID string) (*models.ApiKey, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	var key models.ApiKey
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting api keys for %s: %w", userID, err)
	}
	return &key, nil
}

func (r *apiKeyRepository) UpsertProviderKey(ctx context.Context, userID string, provider models.Provider, encrypted string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	column, ok := models.ApiKeyColumn(provider)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownProvider, provider)
	}
	record := models.ApiKey{UserID: userID}
	switch provider {
	case models.ProviderOpenAI:
		record.EncryptedOpenAIKey = &encrypted
	case models.ProviderAnthropic:
		record.EncryptedAnthropicKey = &encrypted
	case models.ProviderGoogle:
		record.EncryptedGoogleKey = &encrypted
	}
	// Upsert on the unique user_id; only the provider's column is overwritten
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("storing %s key for %s: %w", provider, userID, err)
	}
	return nil
}

func (r *apiKeyRepository) ClearProviderKey(ctx context.Context, userID string, provider models.Provider) error {
	column, ok := models.ApiKeyColumn(provider)
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrUnknownProvider, provider)
	}
	err := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("user_id = ?", userID).
		Update(column, gorm.Expr("NULL")).Error
	if err != nil {
		return fmt.Errorf("clearing %s key for %s: %w", provider, userID, err)
	}
	return nil
}
