// Package provider implements the LLM backend dispatchers. Each supported
// backend contributes one wire-format adapter; the shared HTTP provider
// handles the request lifecycle identically for all of them. Adding a
// backend means adding one adapter, not changing calling code.
package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// ErrNoContent marks a 2xx response with no extractable text field. It is
// surfaced as an error, never as a silent empty reply.
var ErrNoContent = errors.New("no response content")

// providerAdapter captures the per-backend wire-format differences.
type providerAdapter struct {
	buildRequest  func(cfg domain.ProviderConfig, msgs []domain.ChatMessage) ([]byte, error)
	parseResponse func(body []byte) (string, error)
	endpoint      func(cfg domain.ProviderConfig, apiKey string) string
	setHeaders    func(req *http.Request, apiKey string)
}

type httpProvider struct {
	name       string
	cfg        domain.ProviderConfig
	httpClient *http.Client
	adapter    providerAdapter
}

func newHTTPProvider(name string, cfg domain.ProviderConfig, client *http.Client, adapter providerAdapter) ports.Provider {
	return &httpProvider{
		name:       name,
		cfg:        cfg,
		httpClient: client,
		adapter:    adapter,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

// Send makes a single HTTP attempt against the backend. Non-success
// responses surface the status code and body text verbatim; there is no
// retry and no fallback negotiation between providers.
func (p *httpProvider) Send(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	apiKey, err := p.resolveAPIKey()
	if err != nil {
		return "", err
	}

	requestBody, err := p.adapter.buildRequest(p.cfg, msgs)
	if err != nil {
		return "", fmt.Errorf("%s: build request: %w", p.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.adapter.endpoint(p.cfg, apiKey), bytes.NewReader(requestBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.adapter.setHeaders != nil {
		p.adapter.setHeaders(httpReq, apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read response body: %w", p.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s: HTTP %d: %s", p.name, resp.StatusCode,
			strings.TrimSpace(string(responseBody)))
	}

	text, err := p.adapter.parseResponse(responseBody)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	return text, nil
}

func (p *httpProvider) resolveAPIKey() (string, error) {
	fallback := defaultAuthEnvVar(p.cfg.Provider)
	if key := resolveAuth(p.cfg.AuthEnvVar, fallback); key != "" {
		return key, nil
	}
	envVar := p.cfg.AuthEnvVar
	if envVar == "" {
		envVar = fallback
	}
	return "", fmt.Errorf("%s: missing API key: set %s", p.name, envVar)
}

func defaultAuthEnvVar(kind domain.ProviderKind) string {
	switch kind {
	case domain.ProviderGemini:
		return "GEMINI_API_KEY"
	case domain.ProviderGroq:
		return "GROQ_API_KEY"
	case domain.ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return ""
	}
}

func resolveAuth(primary string, fallback string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	if fallback == "" {
		return ""
	}
	return os.Getenv(fallback)
}
