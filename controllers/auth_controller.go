package controllers

import (
	"errors"
	"log"
	"net/http"

	"campusai/models"
	"campusai/services"
)

// LoginHandler signs a user in. Any username/password pair is accepted.
func (c *Controller) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.SessionResponse{BaseResponse: models.NewError("Invalid JSON format")})
		return
	}

	sessionID := clientSession(w, r, req.SessionID)

	sess, err := c.sessions.Login(sessionID, req)
	if errors.Is(err, services.ErrMissingUsername) {
		writeJSON(w, http.StatusBadRequest, models.SessionResponse{
			BaseResponse: models.NewError(err.Error()),
			SessionID:    sessionID,
		})
		return
	}
	if err != nil {
		log.Printf("Login for %s failed: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, models.SessionResponse{
			BaseResponse: models.NewError("login failed"),
			SessionID:    sessionID,
		})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse(sessionID, sess))
}

// WhoAmIHandler reports the signed-in user of the client session
func (c *Controller) WhoAmIHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := clientSession(w, r, "")

	sess, err := c.sessions.Current(sessionID)
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		writeJSON(w, http.StatusOK, models.SessionResponse{
			BaseResponse: models.NewSuccess(),
			SessionID:    sessionID,
		})
	case err != nil:
		log.Printf("Session lookup for %s failed: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, models.SessionResponse{
			BaseResponse: models.NewError("session lookup failed"),
			SessionID:    sessionID,
		})
	default:
		writeJSON(w, http.StatusOK, sessionResponse(sessionID, sess))
	}
}

// LogoutHandler signs the user out and clears the conversation
func (c *Controller) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.SessionResponse{BaseResponse: models.NewError("Invalid JSON format")})
		return
	}

	sessionID := clientSession(w, r, req.SessionID)

	if err := c.sessions.Logout(sessionID); err != nil {
		log.Printf("Logout for %s failed: %v", sessionID, err)
		writeJSON(w, http.StatusInternalServerError, models.SessionResponse{
			BaseResponse: models.NewError("logout failed"),
			SessionID:    sessionID,
		})
		return
	}

	writeJSON(w, http.StatusOK, models.SessionResponse{
		BaseResponse: models.NewSuccess(),
		SessionID:    sessionID,
	})
}

func sessionResponse(sessionID string, sess models.UserSession) models.SessionResponse {
	user := sess.User
	return models.SessionResponse{
		BaseResponse: models.NewSuccess(),
		SessionID:    sessionID,
		LoggedIn:     true,
		User:         &user,
		Expires:      sess.Expires,
	}
}
