package models

// Provider identifies an LLM vendor. The set is closed: see the Provider* constants.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Providers lists every supported provider in presentation order.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle}

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		return true
	}
	return false
}

// LLMModel represents a single language model option exposed to clients.
type LLMModel struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"displayName"`
	ProviderID   Provider `json:"providerId"`
	ProviderName string   `json:"providerName"`
}

// LLMModelGroup groups models by their provider for presentation.
type LLMModelGroup struct {
	ProviderID   Provider   `json:"providerId"`
	ProviderName string     `json:"providerName"`
	Models       []LLMModel `json:"models"`
}
