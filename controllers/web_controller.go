package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"campusai/models"
	"campusai/views"
)

var appStart = time.Now()

// IndexHandler serves the chat page
func (c *Controller) IndexHandler(w http.ResponseWriter, r *http.Request) {
	clientSession(w, r, "")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderIndex(w, views.DefaultIndexPage(c.college, c.provider.Kind)); err != nil {
		log.Printf("Error rendering index: %v", err)
	}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// HealthHandler reports the state of the chatbot, storage and Discord bot
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if c.db != nil {
		if err := c.db.Ping(ctx); err != nil {
			db = check{Err: "ping: " + err.Error()}
		}
	}

	status, code := "healthy", http.StatusOK
	if !db.OK {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	health := models.Metadata{
		"status":     status,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     map[string]check{"database": db},
		"endpoints": []string{
			"/", "/chat", "/search", "/documents/{id}", "/transcript", "/transcript/html",
			"/login", "/whoami", "/logout", "/settings/provider", "/health",
		},
		"chatbot": c.chatbot.GetStatus(),
		"time":    time.Now().Format(time.RFC3339),
	}
	if c.discordService != nil {
		health["discord"] = c.discordService.GetStatus()
	}

	writeJSON(w, code, health)
}
