package provider

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ariahq/aria/internal/domain"
)

// Groq and OpenRouter both speak the OpenAI chat-completions dialect; they
// differ only in base URL. The key travels as a Bearer token.
const (
	groqEndpoint       = "https://api.groq.com/openai/v1/chat/completions"
	openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"
)

func openAICompatAdapter(defaultEndpoint string) providerAdapter {
	return providerAdapter{
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		endpoint: func(cfg domain.ProviderConfig, _ string) string {
			if cfg.Endpoint != "" {
				return cfg.Endpoint
			}
			return defaultEndpoint
		},
		setHeaders: func(req *http.Request, apiKey string) {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

func buildChatCompletionRequest(cfg domain.ProviderConfig, msgs []domain.ChatMessage) ([]byte, error) {
	messages := make([]chatMessage, 0, len(msgs))
	for _, msg := range msgs {
		messages = append(messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return json.Marshal(chatCompletionRequest{
		Model:     cfg.ModelID,
		Messages:  messages,
		MaxTokens: cfg.MaxTokens,
	})
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", ErrNoContent
	}
	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", ErrNoContent
	}
	return content, nil
}
