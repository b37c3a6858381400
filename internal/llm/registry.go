package llm

import (
	"fmt"
	"os"
	"sort"
)

// ProviderFactory creates providers.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// DefaultModels maps provider names to their default models.
var DefaultModels = map[string]string{
	"gemini":    "gemini-2.0-flash",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-sonnet-4-20250514",
}

var registry = map[string]ProviderFactory{}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: %v)", name, AvailableProviders())
	}
	return factory(cfg)
}

// RegisterProvider adds a provider factory.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// AvailableProviders returns the sorted list of registered providers.
func AvailableProviders() []string {
	providers := make([]string, 0, len(registry))
	for name := range registry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// DetectProvider auto-detects a provider from the environment.
// Returns the provider name and API key; both empty when no key is set.
// Priority: GEMINI_API_KEY > OPENAI_API_KEY > ANTHROPIC_API_KEY.
func DetectProvider() (provider string, apiKey string) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return "gemini", key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return "openai", key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return "anthropic", key
	}
	return "", ""
}

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(provider string) string {
	if model, ok := DefaultModels[provider]; ok {
		return model
	}
	return ""
}
