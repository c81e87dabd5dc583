package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"campusai/models"
)

// Default provider endpoints
const (
	DefaultGeminiBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultOpenAIBaseURL    = "https://api.openai.com"
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
)

// ProviderGateway sends one prompt to the remote provider named by cfg.
// Failures are reported as *ProviderError; there are no retries.
type ProviderGateway interface {
	Complete(ctx context.Context, prompt string, cfg models.ProviderConfig) (string, error)
}

// GatewayOption configures an HTTPGateway
type GatewayOption func(*HTTPGateway)

// WithHTTPClient sets the HTTP client used for provider calls.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *HTTPGateway) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithBaseURL overrides the endpoint for one provider kind.
func WithBaseURL(kind models.ProviderKind, baseURL string) GatewayOption {
	return func(g *HTTPGateway) {
		if baseURL != "" {
			g.baseURLs[kind] = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithProviderTimeout sets the per-request timeout.
func WithProviderTimeout(d time.Duration) GatewayOption {
	return func(g *HTTPGateway) {
		if d > 0 {
			g.httpClient.Timeout = d
		}
	}
}

// HTTPGateway talks to Gemini, OpenAI and Anthropic over their REST APIs
type HTTPGateway struct {
	httpClient *http.Client
	baseURLs   map[models.ProviderKind]string
}

// NewHTTPGateway creates a gateway with the public endpoints and a 30s timeout.
func NewHTTPGateway(opts ...GatewayOption) *HTTPGateway {
	g := &HTTPGateway{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURLs: map[models.ProviderKind]string{
			models.ProviderGemini:    DefaultGeminiBaseURL,
			models.ProviderOpenAI:    DefaultOpenAIBaseURL,
			models.ProviderAnthropic: DefaultAnthropicBaseURL,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Complete implements ProviderGateway.
func (g *HTTPGateway) Complete(ctx context.Context, prompt string, cfg models.ProviderConfig) (string, error) {
	if strings.TrimSpace(cfg.Credential) == "" {
		return "", &ProviderError{Kind: cfg.Kind, Op: "Complete", Message: "missing credential"}
	}

	switch cfg.Kind {
	case models.ProviderGemini:
		return g.completeGemini(ctx, prompt, cfg)
	case models.ProviderOpenAI:
		return g.completeOpenAI(ctx, prompt, cfg)
	case models.ProviderAnthropic:
		return g.completeAnthropic(ctx, prompt, cfg)
	default:
		return "", &ProviderError{Kind: cfg.Kind, Op: "Complete", Message: "unsupported provider"}
	}
}

// Endpoints returns the base URL used for each provider kind.
func (g *HTTPGateway) Endpoints() map[models.ProviderKind]string {
	out := make(map[models.ProviderKind]string, len(g.baseURLs))
	for k, v := range g.baseURLs {
		out[k] = v
	}
	return out
}

// Timeout returns the per-request timeout.
func (g *HTTPGateway) Timeout() time.Duration {
	return g.httpClient.Timeout
}

// postJSON sends body to url and decodes a 2xx response into out.
func (g *HTTPGateway) postJSON(ctx context.Context, kind models.ProviderKind, op, url string, headers map[string]string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return &ProviderError{Kind: kind, Op: op, Message: "failed to marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return &ProviderError{Kind: kind, Op: op, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// Gemini carries the key in the query string; keep it out of logs.
		var uerr *neturl.Error
		if errors.As(err, &uerr) {
			uerr.URL = redactQuery(uerr.URL)
		}
		return &ProviderError{Kind: kind, Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Kind: kind, Op: op, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Kind: kind, Op: op, StatusCode: resp.StatusCode, Message: truncate(strings.TrimSpace(string(respBody)), 200)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &ProviderError{Kind: kind, Op: op, Message: "failed to decode response", Err: err}
	}
	return nil
}

// BuildPrompt combines the serialized knowledge base with the question.
func BuildPrompt(kb *KnowledgeBase, question string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are CampusAI, an assistant for %s. ", kb.College.Name))
	sb.WriteString("Answer using only the knowledge below. If the answer is not there, say so and suggest contacting ")
	sb.WriteString(kb.College.Email)
	sb.WriteString(".\n\nKnowledge: ")
	sb.WriteString(kb.JSON())
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}

// modelFor picks the model a provider is called with. A hint is honoured only
// when it belongs to that provider's model family.
func modelFor(kind models.ProviderKind, hint string) string {
	hint = strings.TrimSpace(hint)
	lower := strings.ToLower(hint)

	switch kind {
	case models.ProviderGemini:
		if strings.HasPrefix(lower, "gemini") {
			return hint
		}
		return "gemini-pro"
	case models.ProviderAnthropic:
		if strings.HasPrefix(lower, "claude") {
			return hint
		}
		return "claude-3-sonnet-20240229"
	case models.ProviderOpenAI:
		if hint != "" && !strings.HasPrefix(lower, "gemini") && !strings.HasPrefix(lower, "claude") {
			return hint
		}
		return "gpt-3.5-turbo"
	}
	return hint
}

func redactQuery(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i] + "?REDACTED"
	}
	return raw
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
