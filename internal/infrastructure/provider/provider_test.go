package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ariahq/aria/internal/domain"
)

func testFactory(srv *httptest.Server) *Factory {
	return &Factory{httpClient: srv.Client()}
}

func testMessages() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Hello", Timestamp: 100},
	}
}

func TestRateLimitSurfacesStatusWithoutRetry(t *testing.T) {
	configs := []domain.ProviderConfig{
		{Provider: domain.ProviderGemini, ModelID: "gemini-1.5-flash", AuthEnvVar: "TEST_LLM_KEY"},
		{Provider: domain.ProviderGroq, ModelID: "llama-3.1-8b-instant", AuthEnvVar: "TEST_LLM_KEY"},
		{Provider: domain.ProviderOpenRouter, ModelID: "auto", AuthEnvVar: "TEST_LLM_KEY"},
	}
	t.Setenv("TEST_LLM_KEY", "secret")

	for _, cfg := range configs {
		t.Run(string(cfg.Provider), func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			}))
			defer srv.Close()

			cfg.Endpoint = srv.URL
			p, err := testFactory(srv).ForConfig(cfg)
			if err != nil {
				t.Fatalf("ForConfig error: %v", err)
			}

			_, err = p.Send(context.Background(), testMessages())
			if err == nil {
				t.Fatal("expected an error for HTTP 429")
			}
			if !strings.Contains(err.Error(), "429") {
				t.Fatalf("error %q does not carry the status code", err)
			}
			if got := calls.Load(); got != 1 {
				t.Fatalf("expected exactly 1 attempt, got %d", got)
			}
		})
	}
}

func TestGeminiWireFormat(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret")

	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hi there"}]}}]}`))
	}))
	defer srv.Close()

	cfg := domain.ProviderConfig{
		Provider:   domain.ProviderGemini,
		ModelID:    "gemini-1.5-flash",
		AuthEnvVar: "TEST_LLM_KEY",
		Endpoint:   srv.URL,
	}
	p, _ := testFactory(srv).ForConfig(cfg)

	msgs := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "be brief", Timestamp: 99},
		{Role: domain.RoleUser, Content: "Hello", Timestamp: 100},
		{Role: domain.RoleAssistant, Content: "earlier reply", Timestamp: 101},
	}
	reply, err := p.Send(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if reply != "Hi there" {
		t.Fatalf("reply = %q, want %q", reply, "Hi there")
	}

	if !strings.Contains(gotPath, "key=secret") {
		t.Fatalf("API key not passed as query parameter: %s", gotPath)
	}
	// System folds into user, assistant becomes model.
	if !strings.Contains(gotBody, `{"role":"user","parts":[{"text":"be brief"}]}`) {
		t.Fatalf("system message not folded into user role: %s", gotBody)
	}
	if !strings.Contains(gotBody, `{"role":"model","parts":[{"text":"earlier reply"}]}`) {
		t.Fatalf("assistant message not relabeled model: %s", gotBody)
	}
}

func TestOpenAICompatWireFormat(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret")

	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Sure."}}]}`))
	}))
	defer srv.Close()

	cfg := domain.ProviderConfig{
		Provider:   domain.ProviderGroq,
		ModelID:    "llama-3.1-8b-instant",
		AuthEnvVar: "TEST_LLM_KEY",
		Endpoint:   srv.URL,
	}
	p, _ := testFactory(srv).ForConfig(cfg)

	reply, err := p.Send(context.Background(), testMessages())
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if reply != "Sure." {
		t.Fatalf("reply = %q", reply)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want Bearer token", gotAuth)
	}
	if !strings.Contains(gotBody, `"model":"llama-3.1-8b-instant"`) {
		t.Fatalf("model missing from body: %s", gotBody)
	}
}

func TestEmptyResponseIsAnError(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	cfg := domain.ProviderConfig{
		Provider:   domain.ProviderOpenRouter,
		ModelID:    "auto",
		AuthEnvVar: "TEST_LLM_KEY",
		Endpoint:   srv.URL,
	}
	p, _ := testFactory(srv).ForConfig(cfg)

	_, err := p.Send(context.Background(), testMessages())
	if err == nil || !strings.Contains(err.Error(), "no response content") {
		t.Fatalf("expected no-content error, got %v", err)
	}
}

func TestMissingAPIKeyFailsBeforeNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	t.Setenv("GROQ_API_KEY", "")
	cfg := domain.ProviderConfig{
		Provider:   domain.ProviderGroq,
		ModelID:    "llama-3.1-8b-instant",
		AuthEnvVar: "TEST_LLM_KEY_DEFINITELY_UNSET",
		Endpoint:   srv.URL,
	}
	p, _ := testFactory(srv).ForConfig(cfg)

	_, err := p.Send(context.Background(), testMessages())
	if err == nil || !strings.Contains(err.Error(), "missing API key") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("network call made despite missing API key")
	}
}

func TestUnsupportedProviderKind(t *testing.T) {
	if _, err := NewFactory().ForConfig(domain.ProviderConfig{Provider: "cohere"}); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
