package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ariahq/aria/internal/domain"
)

const geminiEndpointTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

func geminiAdapter() providerAdapter {
	return providerAdapter{
		buildRequest:  buildGeminiRequest,
		parseResponse: parseGeminiResponse,
		endpoint:      geminiEndpoint,
		setHeaders:    func(*http.Request, string) {},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// buildGeminiRequest translates the generic message list into Gemini's
// contents/parts shape. Gemini has no system role and calls the assistant
// "model", so system messages fold into user turns and assistant messages
// are relabeled.
func buildGeminiRequest(_ domain.ProviderConfig, msgs []domain.ChatMessage) ([]byte, error) {
	contents := make([]geminiContent, 0, len(msgs))
	for _, msg := range msgs {
		role := "user"
		if msg.Role == domain.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	return json.Marshal(geminiRequest{Contents: contents})
}

func parseGeminiResponse(body []byte) (string, error) {
	var response struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 {
		return "", ErrNoContent
	}

	var texts []string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	if len(texts) == 0 {
		return "", ErrNoContent
	}
	return strings.TrimSpace(strings.Join(texts, "")), nil
}

// geminiEndpoint templates the model into the URL and carries the API key
// as a query parameter, per Gemini's auth scheme.
func geminiEndpoint(cfg domain.ProviderConfig, apiKey string) string {
	base := cfg.Endpoint
	if base == "" {
		base = fmt.Sprintf(geminiEndpointTemplate, cfg.ModelID)
	}
	return base + "?key=" + url.QueryEscape(apiKey)
}
