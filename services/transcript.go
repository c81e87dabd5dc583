package services

import (
	"sync"
	"time"

	"campusai/models"
)

// TranscriptStore keeps one append-only conversation log per session.
// Transcripts live in memory only and are dropped on Clear.
type TranscriptStore struct {
	mu       sync.Mutex
	sessions map[string][]models.ConversationEntry
	now      func() time.Time
}

// NewTranscriptStore creates an empty store.
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		sessions: make(map[string][]models.ConversationEntry),
		now:      time.Now,
	}
}

// Append adds an entry to the session's transcript and returns it.
func (t *TranscriptStore) Append(sessionID string, role models.Role, content string, sources []models.SourceCitation) models.ConversationEntry {
	entry := models.ConversationEntry{
		Role:      role,
		Content:   content,
		Sources:   append([]models.SourceCitation{}, sources...),
		Timestamp: t.now(),
	}

	t.mu.Lock()
	t.sessions[sessionID] = append(t.sessions[sessionID], entry)
	t.mu.Unlock()

	return entry
}

// Entries returns a copy of the session's transcript in order.
func (t *TranscriptStore) Entries(sessionID string) []models.ConversationEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.sessions[sessionID]
	out := make([]models.ConversationEntry, len(entries))
	copy(out, entries)
	return out
}

// Clear drops the session's transcript.
func (t *TranscriptStore) Clear(sessionID string) {
	t.mu.Lock()
	delete(t.sessions, sessionID)
	t.mu.Unlock()
}

// Stats returns the number of sessions and total entries held.
func (t *TranscriptStore) Stats() (sessions, entries int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.sessions {
		entries += len(e)
	}
	return len(t.sessions), entries
}
