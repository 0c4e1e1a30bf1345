package provider

import (
	"fmt"
	"net/http"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// Factory creates provider instances keyed by the backend discriminant.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new provider factory with a configured HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
	}
}

// ForConfig selects the wire-format adapter for the configured backend.
func (f *Factory) ForConfig(cfg domain.ProviderConfig) (ports.Provider, error) {
	switch cfg.Provider {
	case domain.ProviderGemini:
		return newHTTPProvider("gemini", cfg, f.httpClient, geminiAdapter()), nil
	case domain.ProviderGroq:
		return newHTTPProvider("groq", cfg, f.httpClient, openAICompatAdapter(groqEndpoint)), nil
	case domain.ProviderOpenRouter:
		return newHTTPProvider("openrouter", cfg, f.httpClient, openAICompatAdapter(openRouterEndpoint)), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
