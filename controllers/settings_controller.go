package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"campusai/models"
)

// GetProviderSettingsHandler returns the stored provider settings with the
// credential masked
func (c *Controller) GetProviderSettingsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := clientSession(w, r, "")

	cfg, err := c.settings.Load(sessionID)
	if err != nil {
		log.Printf("Loading provider settings for %s failed: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, models.ProviderSettingsResponse{
			BaseResponse: models.NewError("could not load settings"),
			SessionID:    sessionID,
		})
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse(sessionID, cfg))
}

// UpdateProviderSettingsHandler stores new provider settings. An empty
// api_key keeps the stored credential.
func (c *Controller) UpdateProviderSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ProviderSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ProviderSettingsResponse{BaseResponse: models.NewError("Invalid JSON format")})
		return
	}

	sessionID := clientSession(w, r, req.SessionID)

	current, err := c.settings.Load(sessionID)
	if err != nil {
		log.Printf("Loading provider settings for %s failed: %v", sessionID, err)
	}

	cfg := models.ProviderConfig{
		Kind:       models.ParseProviderKind(req.Provider),
		Credential: strings.TrimSpace(req.APIKey),
		ModelHint:  strings.TrimSpace(req.Model),
	}
	if cfg.Credential == "" {
		cfg.Credential = current.Credential
	}
	if cfg.ModelHint == "" {
		cfg.ModelHint = current.ModelHint
	}

	if err := c.settings.Save(sessionID, cfg); err != nil {
		log.Printf("Saving provider settings for %s failed: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, models.ProviderSettingsResponse{
			BaseResponse: models.NewError("could not save settings"),
			SessionID:    sessionID,
		})
		return
	}

	resp := settingsResponse(sessionID, cfg)
	resp.Message = fmt.Sprintf("✅ AI configuration updated! Now using %s mode.", strings.ToUpper(string(cfg.Kind)))
	writeJSON(w, http.StatusOK, resp)
}

func settingsResponse(sessionID string, cfg models.ProviderConfig) models.ProviderSettingsResponse {
	active := models.ProviderLocal
	if cfg.Remote() {
		active = cfg.Kind
	}
	return models.ProviderSettingsResponse{
		BaseResponse: models.NewSuccess(),
		SessionID:    sessionID,
		Config:       cfg.Masked(),
		Active:       active,
	}
}
