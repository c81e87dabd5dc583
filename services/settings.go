package services

import (
	"fmt"
	"log"

	"campusai/models"
	"campusai/storage"
)

// Storage keys of the three provider settings
const (
	KeyProvider = "ai_provider"
	KeyAPIKey   = "ai_api_key"
	KeyModel    = "ai_model"
)

// ProviderSettings persists a client's provider selection as three
// independent scalar entries in the durable store.
type ProviderSettings struct {
	store    storage.Store
	defaults models.ProviderConfig
}

// DefaultProviderConfig is used for settings that were never stored.
func DefaultProviderConfig() models.ProviderConfig {
	return models.ProviderConfig{Kind: models.ProviderLocal, ModelHint: models.DefaultModelHint}
}

// NewProviderSettings creates settings backed by store. Missing entries fall
// back to defaults.
func NewProviderSettings(store storage.Store, defaults models.ProviderConfig) *ProviderSettings {
	if defaults.Kind == "" {
		defaults.Kind = models.ProviderLocal
	}
	if defaults.ModelHint == "" {
		defaults.ModelHint = models.DefaultModelHint
	}
	return &ProviderSettings{store: store, defaults: defaults}
}

// Load returns the stored config for sessionID with defaults filled in.
func (p *ProviderSettings) Load(sessionID string) (models.ProviderConfig, error) {
	s := storage.Scoped(p.store, sessionID)
	cfg := p.defaults

	if v, ok, err := s.Get(KeyProvider); err != nil {
		return cfg, fmt.Errorf("load %s: %w", KeyProvider, err)
	} else if ok && v != "" {
		cfg.Kind = models.ParseProviderKind(v)
	}

	if v, ok, err := s.Get(KeyAPIKey); err != nil {
		return cfg, fmt.Errorf("load %s: %w", KeyAPIKey, err)
	} else if ok {
		cfg.Credential = v
	}

	if v, ok, err := s.Get(KeyModel); err != nil {
		return cfg, fmt.Errorf("load %s: %w", KeyModel, err)
	} else if ok && v != "" {
		cfg.ModelHint = v
	}

	return cfg, nil
}

// Save stores cfg for sessionID. Unknown provider names are saved as local.
func (p *ProviderSettings) Save(sessionID string, cfg models.ProviderConfig) error {
	s := storage.Scoped(p.store, sessionID)
	kind := models.ParseProviderKind(string(cfg.Kind))

	values := []struct{ key, value string }{
		{KeyProvider, string(kind)},
		{KeyAPIKey, cfg.Credential},
		{KeyModel, cfg.ModelHint},
	}
	for _, v := range values {
		if err := s.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	log.Printf("Provider settings for %s updated: %s (key %s)", sessionID, kind, models.MaskSecret(cfg.Credential))
	return nil
}
