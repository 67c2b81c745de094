package config

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"promptbench/internal/encryption"
)

const (
	keyringService   = "promptbench"
	encryptionSecret = "encryption-secret"
)

var ErrSecretNotFound = errors.New("secret not found")

// SecretStore keeps the encryption secret in the OS keyring.
type SecretStore struct {
	ring keyring.Keyring
}

func OpenSecretStore() (*SecretStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return NewSecretStore(ring), nil
}

func NewSecretStore(ring keyring.Keyring) *SecretStore {
	return &SecretStore{ring: ring}
}

func (s *SecretStore) EncryptionSecret() (string, error) {
	item, err := s.ring.Get(encryptionSecret)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

// InitEncryptionSecret stores a fresh secret unless one exists already.
// It reports whether a new secret was written.
func (s *SecretStore) InitEncryptionSecret(force bool) (bool, error) {
	if !force {
		existing, err := s.EncryptionSecret()
		if err == nil && existing != "" {
			return false, nil
		}
		if err != nil && !errors.Is(err, ErrSecretNotFound) {
			return false, err
		}
	}
	secret, err := encryption.GenerateSecret()
	if err != nil {
		return false, err
	}
	err = s.ring.Set(keyring.Item{
		Key:         encryptionSecret,
		Data:        []byte(secret),
		Label:       "promptbench encryption secret",
		Description: "AES-256-GCM key for stored provider API keys",
	})
	if err != nil {
		return false, fmt.Errorf("store encryption secret: %w", err)
	}
	return true, nil
}
