// Package integrations hands selected utterances off to connected external
// services (gmail, calendar, drive) over their configured webhook endpoints.
package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// Registry resolves a service handler per connected service kind.
type Registry struct {
	handlers map[domain.ServiceKind]ports.ServiceHandler
}

// NewRegistry builds webhook handlers for every connected integration.
func NewRegistry(settings domain.IntegrationSettings, httpClient *http.Client) *Registry {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	handlers := make(map[domain.ServiceKind]ports.ServiceHandler)
	for kind, endpoint := range settings.Connected() {
		handlers[kind] = &webhookHandler{kind: kind, endpoint: endpoint, httpClient: httpClient}
	}
	return &Registry{handlers: handlers}
}

// Handler returns the handler for kind, if that service is connected.
func (r *Registry) Handler(kind domain.ServiceKind) (ports.ServiceHandler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

type webhookHandler struct {
	kind       domain.ServiceKind
	endpoint   string
	httpClient *http.Client
}

func (h *webhookHandler) Kind() domain.ServiceKind {
	return h.kind
}

// Handle posts the utterance to the service endpoint and returns the reply
// text. A JSON body with a "reply" field is preferred; anything else is
// returned verbatim.
func (h *webhookHandler) Handle(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", h.kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s: HTTP %d: %s", h.kind, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Reply != "" {
		return parsed.Reply, nil
	}
	return strings.TrimSpace(string(body)), nil
}

var _ ports.ServiceHandler = (*webhookHandler)(nil)
