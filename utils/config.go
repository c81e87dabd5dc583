package utils

import (
	"log"
	"os"
	"strings"
	"time"

	"campusai/models"
)

// AppConfig holds the process configuration read from the environment
type AppConfig struct {
	Port             string
	DBPath           string
	TypingDelay      time.Duration
	Provider         models.ProviderConfig
	GeminiBaseURL    string
	OpenAIBaseURL    string
	AnthropicBaseURL string
	ProviderTimeout  time.Duration
	KnowledgeXLSX    string
	Discord          models.DiscordConfig
	AllowedOrigins   []string
}

// LoadConfig reads .env files and then the environment, applying defaults.
func LoadConfig() AppConfig {
	if err := LoadEnvWithFallback(); err != nil {
		log.Printf("[cfg] env files: %v", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the configuration from a lookup function.
func ConfigFromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		DBPath:      get("DB_PATH", "campusai.db"),
		TypingDelay: duration(get("TYPING_DELAY", ""), 1500*time.Millisecond),
		Provider: models.ProviderConfig{
			Kind:       models.ParseProviderKind(get("AI_PROVIDER", "local")),
			Credential: get("AI_API_KEY", ""),
			ModelHint:  get("AI_MODEL", models.DefaultModelHint),
		},
		GeminiBaseURL:    get("GEMINI_BASE_URL", ""),
		OpenAIBaseURL:    get("OPENAI_BASE_URL", ""),
		AnthropicBaseURL: get("ANTHROPIC_BASE_URL", ""),
		ProviderTimeout:  duration(get("PROVIDER_TIMEOUT", ""), 30*time.Second),
		KnowledgeXLSX:    get("KNOWLEDGE_XLSX", ""),
		Discord: models.DiscordConfig{
			Token:         get("DISCORD_BOT_TOKEN", ""),
			CommandPrefix: getenv("DISCORD_COMMAND_PREFIX"),
		},
		AllowedOrigins: splitList(get("ALLOWED_ORIGINS", "*")),
	}
	cfg.Discord.Enabled = cfg.Discord.Token != ""

	masked := cfg
	masked.Provider = cfg.Provider.Masked()
	masked.Discord.Token = models.MaskSecret(cfg.Discord.Token)
	log.Printf("[cfg] %+v", masked)

	return cfg
}

func duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		log.Printf("[cfg] invalid duration %q, using %s", s, def)
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
