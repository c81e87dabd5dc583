package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"campusai/models"
)

// FallbackNotice prefixes a local answer given after a provider failure
const FallbackNotice = "I'm having trouble connecting to the AI service. Switching to local mode...\n\n"

// DefaultTypingDelay is how long local answers pretend to be typed
const DefaultTypingDelay = 1500 * time.Millisecond

// ChatbotOption configures a Chatbot
type ChatbotOption func(*Chatbot)

// WithTypingDelay sets the simulated typing pause of local answers.
func WithTypingDelay(d time.Duration) ChatbotOption {
	return func(c *Chatbot) {
		if d >= 0 {
			c.typingDelay = d
		}
	}
}

// Chatbot runs the request cycle of a chat session: validate the message,
// record it, answer locally or through the provider gateway, and record the
// answer.
type Chatbot struct {
	kb          *KnowledgeBase
	index       *DocumentIndex
	dispatcher  *ResponseDispatcher
	gateway     ProviderGateway
	transcripts *TranscriptStore
	typingDelay time.Duration
	startTime   time.Time

	mu       sync.Mutex
	inFlight map[string]bool
	served   map[models.ProviderKind]int
	fallback int
}

// NewChatbot creates a chatbot. gateway may be nil, in which case every
// message is answered locally.
func NewChatbot(kb *KnowledgeBase, index *DocumentIndex, dispatcher *ResponseDispatcher, gateway ProviderGateway, transcripts *TranscriptStore, opts ...ChatbotOption) *Chatbot {
	c := &Chatbot{
		kb:          kb,
		index:       index,
		dispatcher:  dispatcher,
		gateway:     gateway,
		transcripts: transcripts,
		typingDelay: DefaultTypingDelay,
		startTime:   time.Now(),
		inFlight:    make(map[string]bool),
		served:      make(map[models.ProviderKind]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	log.Printf("Chatbot initialized with %d documents (typing delay %s)", index.Len(), c.typingDelay)
	return c
}

// ProcessMessage answers one message for sessionID. userName personalizes
// greetings and may be empty. Blank messages return ErrEmptyMessage and a
// message arriving while another is in flight for the same session returns
// ErrBusy; neither touches the transcript.
func (c *Chatbot) ProcessMessage(ctx context.Context, sessionID, message, userName string, cfg models.ProviderConfig) (models.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatResponse{}, ErrEmptyMessage
	}

	if !c.acquire(sessionID) {
		return models.ChatResponse{}, ErrBusy
	}
	defer c.release(sessionID)

	c.transcripts.Append(sessionID, models.RoleUser, message, nil)

	resp, provider, fellBack, err := c.generateResponse(ctx, message, userName, cfg)
	if err != nil {
		return models.ChatResponse{}, err
	}

	c.transcripts.Append(sessionID, models.RoleAssistant, resp.Text, resp.Sources)
	c.record(provider, fellBack)

	log.Printf("Response generated using provider: %s (fallback=%v, sources=%d)", provider, fellBack, len(resp.Sources))

	return models.ChatResponse{
		BaseResponse: models.NewSuccess(),
		Message:      resp.Text,
		SessionID:    sessionID,
		Sources:      resp.Sources,
		Provider:     provider,
		Fallback:     fellBack,
	}, nil
}

// generateResponse answers locally unless cfg names a usable remote
// provider. A failed provider call degrades to the local answer with
// FallbackNotice in front of it.
func (c *Chatbot) generateResponse(ctx context.Context, message, userName string, cfg models.ProviderConfig) (models.Response, models.ProviderKind, bool, error) {
	if !cfg.Remote() || c.gateway == nil {
		if err := c.typing(ctx); err != nil {
			return models.Response{}, "", false, err
		}
		return c.dispatcher.Generate(message, userName), models.ProviderLocal, false, nil
	}

	text, err := c.gateway.Complete(ctx, BuildPrompt(c.kb, message), cfg)
	if err != nil {
		log.Printf("%s provider failed: %v, using local answers", cfg.Kind, err)
		local := c.dispatcher.Generate(message, userName)
		local.Text = FallbackNotice + local.Text
		return local, models.ProviderLocal, true, nil
	}

	return models.Response{Text: text, Sources: c.dispatcher.CitationsFor(text)}, cfg.Kind, false, nil
}

func (c *Chatbot) typing(ctx context.Context) error {
	if c.typingDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.typingDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Chatbot) acquire(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[sessionID] {
		return false
	}
	c.inFlight[sessionID] = true
	return true
}

func (c *Chatbot) release(sessionID string) {
	c.mu.Lock()
	delete(c.inFlight, sessionID)
	c.mu.Unlock()
}

func (c *Chatbot) record(provider models.ProviderKind, fellBack bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.served[provider]++
	if fellBack {
		c.fallback++
	}
}

// Transcript returns the session's conversation so far.
func (c *Chatbot) Transcript(sessionID string) []models.ConversationEntry {
	return c.transcripts.Entries(sessionID)
}

// Search ranks the document collection against query.
func (c *Chatbot) Search(query string) []models.ScoredDocument {
	return c.index.Search(query)
}

// Document looks up a document by id.
func (c *Chatbot) Document(id string) (models.Document, bool) {
	return c.index.Get(id)
}

// Knowledge summarizes the loaded knowledge base.
func (c *Chatbot) Knowledge() models.KnowledgeStatus {
	docs := c.index.All()
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return models.KnowledgeStatus{
		College:       c.kb.College.Name,
		DocumentCount: len(docs),
		DocumentIDs:   ids,
		Drives:        len(c.kb.Placements.Companies),
		DrivesSource:  c.kb.DrivesSource(),
	}
}

// GetStatus returns the current status of the chatbot
func (c *Chatbot) GetStatus() map[string]interface{} {
	sessions, entries := c.transcripts.Stats()

	c.mu.Lock()
	served := make(map[string]int, len(c.served))
	for k, v := range c.served {
		served[string(k)] = v
	}
	inFlight := len(c.inFlight)
	fallback := c.fallback
	c.mu.Unlock()

	status := map[string]interface{}{
		"status":       "active",
		"uptime":       time.Since(c.startTime).String(),
		"typing_delay": c.typingDelay.String(),
		"knowledge":    c.Knowledge(),
		"sessions":     sessions,
		"entries":      entries,
		"in_flight":    inFlight,
		"served":       served,
		"fallbacks":    fallback,
	}

	if g, ok := c.gateway.(*HTTPGateway); ok {
		status["providers"] = map[string]interface{}{
			"endpoints": g.Endpoints(),
			"timeout":   g.Timeout().String(),
		}
	}

	return status
}
