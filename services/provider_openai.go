package services

import (
	"context"
	"strings"

	"campusai/models"
)

// ChatGPTRequest represents a request to the chat completions API
type ChatGPTRequest struct {
	Model       string           `json:"model"`
	Messages    []ChatGPTMessage `json:"messages"`
	Temperature float64          `json:"temperature"`
}

// ChatGPTMessage represents a message in the ChatGPT format
type ChatGPTMessage struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// ChatGPTResponse represents a response from the chat completions API
type ChatGPTResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

const openAISystemPrompt = "You are CampusAI, a helpful campus FAQ assistant. " +
	"Provide concise, direct answers grounded in the knowledge you are given."

// completeOpenAI authenticates with a bearer token.
func (g *HTTPGateway) completeOpenAI(ctx context.Context, prompt string, cfg models.ProviderConfig) (string, error) {
	const op = "chat/completions"

	request := ChatGPTRequest{
		Model: modelFor(models.ProviderOpenAI, cfg.ModelHint),
		Messages: []ChatGPTMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.Credential}

	var resp ChatGPTResponse
	if err := g.postJSON(ctx, models.ProviderOpenAI, op, g.baseURLs[models.ProviderOpenAI]+"/v1/chat/completions", headers, request, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Kind: models.ProviderOpenAI, Op: op, Message: "no response choices"}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{Kind: models.ProviderOpenAI, Op: op, Message: "empty message content"}
	}
	return text, nil
}
