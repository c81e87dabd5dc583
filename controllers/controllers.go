package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"campusai/models"
	"campusai/services"
)

// Pinger is a dependency whose health can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config wires the services a Controller serves
type Config struct {
	Chatbot  *services.Chatbot
	Sessions *services.SessionManager
	Settings *services.ProviderSettings
	Discord  *services.DiscordService // optional
	DB       Pinger                   // optional
	College  string
	Provider models.ProviderConfig // Server default, shown on the chat page
}

// Controller holds the HTTP handlers of the chat service
type Controller struct {
	chatbot        *services.Chatbot
	sessions       *services.SessionManager
	settings       *services.ProviderSettings
	discordService *services.DiscordService
	db             Pinger
	college        string
	provider       models.ProviderConfig
}

// NewController creates a new controller instance
func NewController(cfg Config) *Controller {
	return &Controller{
		chatbot:        cfg.Chatbot,
		sessions:       cfg.Sessions,
		settings:       cfg.Settings,
		discordService: cfg.Discord,
		db:             cfg.DB,
		college:        cfg.College,
		provider:       cfg.Provider,
	}
}

// RegisterRoutes configures all endpoints on r
func (c *Controller) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", c.IndexHandler).Methods(http.MethodGet)
	r.HandleFunc("/chat", c.ChatHandler).Methods(http.MethodPost)
	r.HandleFunc("/search", c.SearchHandler).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}", c.DocumentHandler).Methods(http.MethodGet)
	r.HandleFunc("/transcript", c.TranscriptHandler).Methods(http.MethodGet)
	r.HandleFunc("/transcript/html", c.TranscriptHTMLHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", c.LoginHandler).Methods(http.MethodPost)
	r.HandleFunc("/whoami", c.WhoAmIHandler).Methods(http.MethodGet)
	r.HandleFunc("/logout", c.LogoutHandler).Methods(http.MethodPost)
	r.HandleFunc("/settings/provider", c.GetProviderSettingsHandler).Methods(http.MethodGet)
	r.HandleFunc("/settings/provider", c.UpdateProviderSettingsHandler).Methods(http.MethodPut)
	r.HandleFunc("/health", c.HealthHandler).Methods(http.MethodGet)
}

// StartServices starts all background services (Discord bot, etc.)
func (c *Controller) StartServices(enableDiscord bool) error {
	switch {
	case !enableDiscord:
		log.Printf("Discord service disabled via command line flag")
	case c.discordService == nil || !c.discordService.IsEnabled():
		log.Printf("Discord service requested but not properly configured (missing DISCORD_BOT_TOKEN)")
	default:
		if err := c.discordService.Start(); err != nil {
			log.Printf("Failed to start Discord service: %v", err)
			return err
		}
	}
	return nil
}

// StopServices stops all background services
func (c *Controller) StopServices() error {
	if c.discordService != nil {
		return c.discordService.Stop()
	}
	return nil
}
