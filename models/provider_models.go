package models

import "strings"

// ProviderKind selects where answers are produced
type ProviderKind string

const (
	ProviderLocal     ProviderKind = "local"
	ProviderGemini    ProviderKind = "gemini"
	ProviderOpenAI    ProviderKind = "openai"
	ProviderAnthropic ProviderKind = "anthropic"
)

// DefaultModelHint is used when no model has been stored
const DefaultModelHint = "gemini-pro"

// ParseProviderKind normalizes s; unknown names map to ProviderLocal.
func ParseProviderKind(s string) ProviderKind {
	switch k := ProviderKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		return k
	default:
		return ProviderLocal
	}
}

// ProviderConfig is passed explicitly into every response-generation call
type ProviderConfig struct {
	Kind       ProviderKind `json:"kind"`
	Credential string       `json:"credential,omitempty"`
	ModelHint  string       `json:"model_hint,omitempty"`
}

// Remote reports whether the config asks for a third-party provider and
// carries the credential needed to reach it. A remote kind without a
// credential degrades to local answers.
func (c ProviderConfig) Remote() bool {
	return c.Kind != ProviderLocal && c.Kind != "" && strings.TrimSpace(c.Credential) != ""
}

// Masked returns a copy safe to hand back to clients.
func (c ProviderConfig) Masked() ProviderConfig {
	c.Credential = MaskSecret(c.Credential)
	return c
}

// MaskSecret keeps the first and last four characters of long secrets.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) > 8:
		return s[:4] + "..." + s[len(s)-4:]
	default:
		return "***"
	}
}

// ProviderSettingsRequest updates the stored provider settings
type ProviderSettingsRequest struct {
	BaseRequest
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

// ProviderSettingsResponse reports the stored provider settings
type ProviderSettingsResponse struct {
	BaseResponse
	SessionID string         `json:"session_id"`
	Config    ProviderConfig `json:"config"`
	Active    ProviderKind   `json:"active"`            // Kind actually used after degradation
	Message   string         `json:"message,omitempty"` // Confirmation shown after an update
}
