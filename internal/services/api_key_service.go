package services

import (
	"context"
	"fmt"
	"strings"

	"promptbench/internal/encryption"
	"promptbench/internal/errs"
	"promptbench/internal/models"
	"promptbench/internal/repositories"
)

// CredentialResolver returns a user's plaintext API key for a provider.
type CredentialResolver interface {
	GetDecryptedKey(ctx context.Context, userID string, provider models.Provider) (string, error)
}

type ApiKeyService interface {
	CredentialResolver
	StoreKey(ctx context.Context, userID string, provider models.Provider, plaintext string) error
	DeleteKey(ctx context.Context, userID string, provider models.Provider) error
	Status(ctx context.Context, userID string) (*models.ApiKeyStatus, error)
}

type apiKeyService struct {
	repo   repositories.ApiKeyRepository
	cipher *encryption.Cipher
}

func NewApiKeyService(repo repositories.ApiKeyRepository, cipher *encryption.Cipher) ApiKeyService {
	return &apiKeyService{repo: repo, cipher: cipher}
}

func (s *apiKeyService) StoreKey(ctx context.Context, userID string, provider models.Provider, plaintext string) error {
	if !provider.Valid() {
		return fmt.Errorf("%w: %q", errs.ErrUnknownProvider, provider)
	}
	plaintext = strings.TrimSpace(plaintext)
	var details []string
	if strings.TrimSpace(userID) == "" {
		details = append(details, "user is required")
	}
	if plaintext == "" {
		details = append(details, "key is required")
	}
	if len(details) > 0 {
		return errs.Invalid(details...)
	}

	encrypted, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("service: encrypt %s key: %w", provider, err)
	}
	if err := s.repo.UpsertProviderKey(ctx, userID, provider, encrypted); err != nil {
		return fmt.Errorf("service: store %s key: %w", provider, err)
	}
	return nil
}

func (s *apiKeyService) GetDecryptedKey(ctx context.Context, userID string, provider models.Provider) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownProvider, provider)
	}
	row, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("service: load api keys: %w", err)
	}
	if row == nil || row.Encrypted(provider) == "" {
		return "", fmt.Errorf("%w: no %s api key configured", errs.ErrMissingCredential, provider)
	}
	plain, err := s.cipher.Decrypt(row.Encrypted(provider))
	if err != nil {
		return "", fmt.Errorf("%w: %s api key: %w", errs.ErrProvider, provider, err)
	}
	return plain, nil
}

func (s *apiKeyService) DeleteKey(ctx context.Context, userID string, provider models.Provider) error {
	if !provider.Valid() {
		return fmt.Errorf("%w: %q", errs.ErrUnknownProvider, provider)
	}
	if err := s.repo.ClearProviderKey(ctx, userID, provider); err != nil {
		return fmt.Errorf("service: delete %s key: %w", provider, err)
	}
	return nil
}

func (s *apiKeyService) Status(ctx context.Context, userID string) (*models.ApiKeyStatus, error) {
	row, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: load api keys: %w", err)
	}
	status := &models.ApiKeyStatus{Keys: make([]models.ProviderKeyStatus, 0, len(models.Providers))}
	for _, p := range models.Providers {
		status.Keys = append(status.Keys, models.ProviderKeyStatus{
			Provider:   p,
			Configured: row != nil && row.Encrypted(p) != "",
		})
	}
	if row != nil {
		updated := row.UpdatedAt
		status.UpdatedAt = &updated
	}
	return status, nil
}
