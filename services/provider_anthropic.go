package services

import (
	"context"
	"strings"

	"campusai/models"
)

const anthropicVersion = "2023-06-01"

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (g *HTTPGateway) completeAnthropic(ctx context.Context, prompt string, cfg models.ProviderConfig) (string, error) {
	const op = "messages"

	request := anthropicRequest{
		Model:     modelFor(models.ProviderAnthropic, cfg.ModelHint),
		MaxTokens: 1024,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{
		"x-api-key":         cfg.Credential,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	if err := g.postJSON(ctx, models.ProviderAnthropic, op, g.baseURLs[models.ProviderAnthropic]+"/v1/messages", headers, request, &resp); err != nil {
		return "", err
	}

	if len(resp.Content) == 0 {
		return "", &ProviderError{Kind: models.ProviderAnthropic, Op: op, Message: "no content blocks"}
	}

	text := strings.TrimSpace(resp.Content[0].Text)
	if text == "" {
		return "", &ProviderError{Kind: models.ProviderAnthropic, Op: op, Message: "empty content text"}
	}
	return text, nil
}
