// Package llm provides a unified interface for structured-extraction providers.
package llm

import (
	"context"
	"net/http"
	"time"
)

// Request carries one extraction prompt to a provider.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSONSchema  map[string]any // when set, the provider must return a bare JSON object
}

// Response is the provider's generated payload.
type Response struct {
	Content string // generated text, expected to be a JSON object
	Model   string // concrete model that produced it, if reported
}

// Provider is the abstraction over remote extraction backends. Name is the
// provider identifier recorded as the artifact source tag.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string // custom endpoint, provider-specific default when empty
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client // overrides the default client, used by tests
}

// DefaultProviderConfig returns sensible defaults.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Timeout: 60 * time.Second,
	}
}
