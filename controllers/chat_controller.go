package controllers

import (
	"errors"
	"log"
	"net/http"

	"campusai/models"
	"campusai/services"
	"campusai/views"
)

const genericFailure = "I apologize, but I encountered an error processing your request. Please try again or check your API configuration."

// ChatHandler processes chat requests using the chatbot service
func (c *Controller) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ChatResponse{BaseResponse: models.NewError("Invalid JSON format")})
		return
	}

	sessionID := clientSession(w, r, req.SessionID)

	cfg, err := c.settings.Load(sessionID)
	if err != nil {
		log.Printf("Loading provider settings for %s failed, using defaults: %v", sessionID, err)
		cfg = services.DefaultProviderConfig()
	}

	response, err := c.chatbot.ProcessMessage(r.Context(), sessionID, req.Message, c.sessions.UserName(sessionID), cfg)
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, services.ErrBusy):
		writeJSON(w, http.StatusConflict, models.ChatResponse{
			BaseResponse: models.NewError(err.Error()),
			SessionID:    sessionID,
		})
		return
	case err != nil:
		log.Printf("Chat request for %s failed: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, models.ChatResponse{
			BaseResponse: models.NewError(genericFailure),
			SessionID:    sessionID,
		})
		return
	}

	response.HTML = string(views.FormatSystemText(response.Message))
	writeJSON(w, http.StatusOK, response)
}

// TranscriptHandler returns the session's conversation as JSON
func (c *Controller) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := clientSession(w, r, "")

	writeJSON(w, http.StatusOK, models.TranscriptResponse{
		BaseResponse: models.NewSuccess(),
		SessionID:    sessionID,
		Entries:      c.chatbot.Transcript(sessionID),
	})
}

// TranscriptHTMLHandler renders the session's conversation as a page
func (c *Controller) TranscriptHTMLHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := clientSession(w, r, "")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.RenderTranscript(w, sessionID, c.chatbot.Transcript(sessionID)); err != nil {
		log.Printf("Error rendering transcript for %s: %v", sessionID, err)
	}
}
