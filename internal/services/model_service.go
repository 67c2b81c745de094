package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"promptbench/internal/assets"
	"promptbench/internal/errs"
	"promptbench/internal/models"
)

// ModelRegistry maps model ids to their provider. It is read-only after construction.
type ModelRegistry interface {
	ResolveProvider(modelID string) (models.Provider, error)
	// DisplayName returns the human name for modelID, or modelID itself when unmapped.
	DisplayName(modelID string) string
	ListModelGroups() []models.LLMModelGroup
}

type modelRegistry struct {
	providerOrder []models.Provider
	providerNames map[models.Provider]string
	models        map[string]models.LLMModel
	// order in which models appear in the catalog, per provider
	byProvider map[models.Provider][]string
}

type rawModelFile struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
}

// NewModelRegistry loads the embedded model catalog.
func NewModelRegistry() (ModelRegistry, error) {
	return NewModelRegistryFromJSON(assets.ModelsData)
}

func NewModelRegistryFromJSON(data []byte) (ModelRegistry, error) {
	var parsed rawModelFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse models asset: %w", err)
	}

	r := &modelRegistry{
		providerNames: make(map[models.Provider]string),
		models:        make(map[string]models.LLMModel),
		byProvider:    make(map[models.Provider][]string),
	}
	for _, provider := range parsed.Providers {
		providerID := models.Provider(strings.TrimSpace(provider.ID))
		if !providerID.Valid() {
			return nil, fmt.Errorf("parse models asset: %w: %q", errs.ErrUnknownProvider, provider.ID)
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		if _, seen := r.providerNames[providerID]; !seen {
			r.providerOrder = append(r.providerOrder, providerID)
		}
		r.providerNames[providerID] = providerName

		for _, mdl := range provider.Models {
			key := strings.TrimSpace(mdl.APIName)
			if key == "" {
				continue
			}
			if existing, dup := r.models[key]; dup {
				return nil, fmt.Errorf("parse models asset: model %s listed for %s and %s", key, existing.ProviderID, providerID)
			}
			display := strings.TrimSpace(mdl.DisplayName)
			if display == "" {
				display = key
			}
			r.models[key] = models.LLMModel{
				Key:          key,
				DisplayName:  display,
				ProviderID:   providerID,
				ProviderName: providerName,
			}
			r.byProvider[providerID] = append(r.byProvider[providerID], key)
		}
	}
	return r, nil
}

func (r *modelRegistry) lookup(modelID string) (models.LLMModel, bool) {
	mdl, ok := r.models[strings.TrimSpace(modelID)]
	return mdl, ok
}

func (r *modelRegistry) ResolveProvider(modelID string) (models.Provider, error) {
	mdl, ok := r.lookup(modelID)
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidModel, modelID)
	}
	return mdl.ProviderID, nil
}

func (r *modelRegistry) DisplayName(modelID string) string {
	if mdl, ok := r.lookup(modelID); ok {
		return mdl.DisplayName
	}
	return modelID
}

func (r *modelRegistry) ListModelGroups() []models.LLMModelGroup {
	groups := make([]models.LLMModelGroup, 0, len(r.providerOrder))
	for _, providerID := range r.providerOrder {
		keys := r.byProvider[providerID]
		group := models.LLMModelGroup{
			ProviderID:   providerID,
			ProviderName: r.providerNames[providerID],
			Models:       make([]models.LLMModel, 0, len(keys)),
		}
		for _, key := range keys {
			group.Models = append(group.Models, r.models[key])
		}
		groups = append(groups, group)
	}
	return groups
}
