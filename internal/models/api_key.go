package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiKey holds a user's encrypted provider credentials. One row per user.
// Ciphertext is never serialized.
type ApiKey struct {
	ID                    string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID                string    `gorm:"size:255;not null;uniqueIndex" json:"userId"`
	EncryptedOpenAIKey    *string   `gorm:"column:encrypted_openai_key;type:text" json:"-"`
	EncryptedAnthropicKey *string   `gorm:"column:encrypted_anthropic_key;type:text" json:"-"`
	EncryptedGoogleKey    *string   `gorm:"column:encrypted_google_key;type:text" json:"-"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (k *ApiKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}

// ApiKeyColumn returns the column that stores the key for provider.
func ApiKeyColumn(provider Provider) (string, bool) {
	switch provider {
	case ProviderOpenAI:
		return "encrypted_openai_key", true
	case ProviderAnthropic:
		return "encrypted_anthropic_key", true
	case ProviderGoogle:
		return "encrypted_google_key", true
	}
	return "", false
}

// Encrypted returns the stored ciphertext for provider, or "" when none is set.
func (k *ApiKey) Encrypted(provider Provider) string {
	var v *string
	switch provider {
	case ProviderOpenAI:
		v = k.EncryptedOpenAIKey
	case ProviderAnthropic:
		v = k.EncryptedAnthropicKey
	case ProviderGoogle:
		v = k.EncryptedGoogleKey
	}
	if v == nil {
		return ""
	}
	return *v
}

// ProviderKeyStatus reports whether a provider key is configured.
type ProviderKeyStatus struct {
	Provider   Provider `json:"provider"`
	Configured bool     `json:"configured"`
}

type ApiKeyStatus struct {
	Keys      []ProviderKeyStatus `json:"keys"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"`
}
