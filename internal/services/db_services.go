package services

import (
	"time"

	"gorm.io/gorm"

	"promptbench/internal/encryption"
	"promptbench/internal/llm/client"
	"promptbench/internal/repositories"
)

// Options tunes the services built by NewDbServices.
type Options struct {
	GenerationConcurrency int
	ProviderTimeout       time.Duration
	DefaultCandidateModel string
}

// DbServices aggregates all domain services backed by the database.
type DbServices struct {
	Models     ModelRegistry
	ApiKeys    ApiKeyService
	Generation GenerationService
	Tests      TestService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB, cipher *encryption.Cipher, factory client.Factory, opts Options) (*DbServices, error) {
	registry, err := NewModelRegistry()
	if err != nil {
		return nil, err
	}

	apiKeys := NewApiKeyService(repositories.NewApiKeyRepository(db), cipher)
	generation := NewGenerationService(registry, apiKeys, factory, GenerationConfig{
		ProviderTimeout:       opts.ProviderTimeout,
		DefaultCandidateModel: opts.DefaultCandidateModel,
	})
	tests := NewTestService(
		repositories.NewTestRepository(db),
		repositories.NewModelTestRepository(db),
		repositories.NewMessageRepository(db),
		repositories.NewResponseRepository(db),
		registry,
		generation,
		TestServiceConfig{GenerationConcurrency: opts.GenerationConcurrency},
	)

	return &DbServices{
		Models:     registry,
		ApiKeys:    apiKeys,
		Generation: generation,
		Tests:      tests,
	}, nil
}
