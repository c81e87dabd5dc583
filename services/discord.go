package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campusai/models"

	"github.com/bwmarrin/discordgo"
)

// DefaultCommandPrefix starts every message addressed to the bot
const DefaultCommandPrefix = "!campus "

// discordLimit is Discord's maximum message length
const discordLimit = 2000

// MessageProcessor answers a chat message for a session
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, sessionID, message, userName string, cfg models.ProviderConfig) (models.ChatResponse, error)
}

// DiscordService handles Discord bot interactions
type DiscordService struct {
	session       *discordgo.Session
	chatbot       MessageProcessor
	provider      models.ProviderConfig
	commandPrefix string
	enabled       bool
	startTime     time.Time
	timeout       time.Duration
}

// NewDiscordService creates a new Discord service instance. The bot stays
// disabled when cfg carries no token. Every Discord conversation uses the
// server's default provider settings.
func NewDiscordService(cfg models.DiscordConfig, chatbot MessageProcessor, provider models.ProviderConfig) *DiscordService {
	commandPrefix := cfg.CommandPrefix
	if commandPrefix == "" {
		commandPrefix = DefaultCommandPrefix
	}

	service := &DiscordService{
		chatbot:       chatbot,
		provider:      provider,
		commandPrefix: commandPrefix,
		startTime:     time.Now(),
		timeout:       time.Minute,
	}

	if cfg.Token == "" {
		log.Printf("Discord bot disabled: DISCORD_BOT_TOKEN not set")
		return service
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Printf("Error creating Discord session: %v", err)
		return service
	}

	service.session = session

	session.AddHandler(func(s *discordgo.Session, event *discordgo.Ready) {
		log.Printf("Discord bot online as %s in %d servers", event.User.Username, len(event.Guilds))
	})
	session.AddHandler(service.messageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	service.enabled = true
	log.Printf("Discord service initialized with prefix: %q", commandPrefix)

	return service
}

// Start begins the Discord bot service
func (d *DiscordService) Start() error {
	if !d.enabled {
		return errors.New("discord service not enabled (missing bot token)")
	}

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}

	log.Printf("Discord bot started, use '%s<question>' in Discord", d.commandPrefix)
	return nil
}

// Stop closes the Discord bot connection
func (d *DiscordService) Stop() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

func (d *DiscordService) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	query, ok := d.extractQuery(m.Content)
	if !ok {
		return
	}
	if query == "" {
		d.sendMessage(s, m.ChannelID, fmt.Sprintf("Please ask a question after `%s`", strings.TrimSpace(d.commandPrefix)))
		return
	}

	s.ChannelTyping(m.ChannelID)

	reply := d.answer(m.Author.ID, m.Author.Username, m.ChannelID, query)
	if reply == "" {
		return
	}
	d.sendMessage(s, m.ChannelID, reply)

	log.Printf("Discord chat: user %s (%s) in channel %s", m.Author.Username, m.Author.ID, m.ChannelID)
}

// answer runs query through the chatbot and returns the text to post, or ""
// when nothing should be posted.
func (d *DiscordService) answer(authorID, authorName, channelID, query string) string {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	sessionID := DiscordSessionID(authorID, channelID)
	resp, err := d.chatbot.ProcessMessage(ctx, sessionID, query, authorName, d.provider)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		return ""
	case errors.Is(err, ErrBusy):
		return "I'm still working on your previous question, one moment please."
	case err != nil:
		log.Printf("Discord message for %s failed: %v", sessionID, err)
		return "Sorry, something went wrong while answering. Please try again."
	}

	return withSources(resp.Message, resp.Sources)
}

// extractQuery reports whether content is addressed to the bot and returns
// the question that follows the prefix.
func (d *DiscordService) extractQuery(content string) (string, bool) {
	if !strings.HasPrefix(content, d.commandPrefix) {
		return "", false
	}
	return strings.TrimSpace(content[len(d.commandPrefix):]), true
}

// DiscordSessionID is the chat session used for a user in a channel.
func DiscordSessionID(userID, channelID string) string {
	return fmt.Sprintf("discord_%s_%s", userID, channelID)
}

func withSources(text string, sources []models.SourceCitation) string {
	if len(sources) == 0 {
		return text
	}
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = fmt.Sprintf("%s (%s)", s.Title, s.Section)
	}
	return text + "\n\n📄 Sources: " + strings.Join(names, ", ")
}

// sendMessage sends a message to Discord, handling length limits
func (d *DiscordService) sendMessage(s *discordgo.Session, channelID, message string) {
	if len(message) <= discordLimit {
		if _, err := s.ChannelMessageSend(channelID, message); err != nil {
			log.Printf("Error sending Discord message: %v", err)
		}
		return
	}

	chunks := splitMessage(message, discordLimit-100)
	for i, chunk := range chunks {
		if i > 0 {
			chunk = "...continued:\n" + chunk
		}
		if i < len(chunks)-1 {
			chunk += "\n..."
		}

		if _, err := s.ChannelMessageSend(channelID, chunk); err != nil {
			log.Printf("Error sending Discord message chunk: %v", err)
		}

		// Small delay between messages to avoid rate limiting
		time.Sleep(200 * time.Millisecond)
	}
}

// splitMessage splits a message into chunks respecting word boundaries
func splitMessage(message string, maxLength int) []string {
	if len(message) <= maxLength {
		return []string{message}
	}

	var chunks []string
	for len(message) > maxLength {
		splitIndex := maxLength
		if spaceIndex := strings.LastIndexAny(message[:maxLength], " \n"); spaceIndex > maxLength/2 {
			splitIndex = spaceIndex
		}

		chunks = append(chunks, message[:splitIndex])
		message = strings.TrimLeft(message[splitIndex:], " \n")
	}

	if len(message) > 0 {
		chunks = append(chunks, message)
	}

	return chunks
}

// IsEnabled returns whether the Discord service is enabled
func (d *DiscordService) IsEnabled() bool {
	return d.enabled
}

// GetStatus returns the current status of the Discord service
func (d *DiscordService) GetStatus() models.DiscordStatus {
	status := models.DiscordStatus{
		Enabled:       d.enabled,
		CommandPrefix: d.commandPrefix,
		Uptime:        time.Since(d.startTime).String(),
	}

	switch {
	case d.enabled && d.session != nil && d.session.State != nil && d.session.State.User != nil:
		status.State = "connected"
		status.User = &models.DiscordUser{
			ID:       d.session.State.User.ID,
			Username: d.session.State.User.Username,
			Bot:      d.session.State.User.Bot,
		}
		status.Guilds = len(d.session.State.Guilds)
	case d.enabled:
		status.State = "initialized_not_started"
	default:
		status.State = "disabled"
		status.Note = "Set DISCORD_BOT_TOKEN to enable"
	}

	return status
}
