package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Client session identification
const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "campusai_client"
	SessionParam  = "session_id"
)

const maxSessionIDLen = 128

// maxBodyBytes bounds request bodies
const maxBodyBytes = 64 << 10

// clientSession resolves the client session id from, in order, the request
// body, the X-Session-ID header, the session_id query parameter and the
// session cookie. A missing or malformed id is replaced by a fresh one. The
// resolved id is echoed in the response header and cookie.
func clientSession(w http.ResponseWriter, r *http.Request, fromBody string) string {
	candidates := []string{fromBody, r.Header.Get(SessionHeader), r.URL.Query().Get(SessionParam)}
	if ck, err := r.Cookie(SessionCookie); err == nil {
		candidates = append(candidates, ck.Value)
	}

	id := ""
	for _, c := range candidates {
		if validSessionID(c) {
			id = c
			break
		}
	}
	if id == "" {
		id = generateSessionID()
	}

	w.Header().Set(SessionHeader, id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLen {
		return false
	}
	return !strings.ContainsAny(id, "/ \t\r\n;,")
}

// generateSessionID creates a random session ID
func generateSessionID() string {
	return "sess_" + uuid.NewString()
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
