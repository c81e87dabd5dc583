package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"campusai/models"
)

// geminiRequest is the generateContent request body
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the subset of the generateContent response we read
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// completeGemini authenticates with the key query parameter.
func (g *HTTPGateway) completeGemini(ctx context.Context, prompt string, cfg models.ProviderConfig) (string, error) {
	const op = "generateContent"

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURLs[models.ProviderGemini],
		url.PathEscape(modelFor(models.ProviderGemini, cfg.ModelHint)),
		url.QueryEscape(cfg.Credential))

	request := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	var resp geminiResponse
	if err := g.postJSON(ctx, models.ProviderGemini, op, endpoint, nil, request, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Kind: models.ProviderGemini, Op: op, Message: "no candidates in response"}
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", &ProviderError{Kind: models.ProviderGemini, Op: op, Message: "empty candidate text"}
	}
	return text, nil
}
