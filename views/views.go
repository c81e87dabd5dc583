// Package views renders chat pages and transcripts. User text is always
// rendered inert; assistant text may use only bold and line-break markup.
package views

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"regexp"
	"strings"
	"time"

	"campusai/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("views").ParseFS(templateFS, "templates/*.html"))

var boldRx = regexp.MustCompile(`\*\*(.+?)\*\*`)

// FormatSystemText escapes s and then applies the two supported directives:
// **text** becomes bold and a newline becomes a line break.
func FormatSystemText(s string) template.HTML {
	out := html.EscapeString(s)
	out = boldRx.ReplaceAllString(out, "<strong>$1</strong>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return template.HTML(out)
}

// Message is one transcript entry prepared for display
type Message struct {
	User    bool
	Sender  string
	Text    string        // set for user entries, escaped on output
	HTML    template.HTML // set for assistant entries
	Sources []string
	Time    string
}

// NewMessage prepares entry for display.
func NewMessage(entry models.ConversationEntry) Message {
	m := Message{Time: entry.Timestamp.Format("15:04")}
	if entry.Role == models.RoleUser {
		m.User = true
		m.Sender = "You"
		m.Text = entry.Content
	} else {
		m.Sender = "CampusAI"
		m.HTML = FormatSystemText(entry.Content)
	}
	for _, s := range entry.Sources {
		m.Sources = append(m.Sources, s.Title)
	}
	return m
}

// TranscriptPage is the data of the transcript template
type TranscriptPage struct {
	SessionID string
	Messages  []Message
	Generated time.Time
}

// RenderTranscript writes entries as an HTML page.
func RenderTranscript(w io.Writer, sessionID string, entries []models.ConversationEntry) error {
	page := TranscriptPage{SessionID: sessionID, Generated: time.Now()}
	for _, e := range entries {
		page.Messages = append(page.Messages, NewMessage(e))
	}
	if err := templates.ExecuteTemplate(w, "transcript.html", page); err != nil {
		return fmt.Errorf("render transcript: %w", err)
	}
	return nil
}

// IndexPage is the data of the chat page
type IndexPage struct {
	College     string
	Provider    models.ProviderKind
	QuickAsks   []string
	Suggestions []string
}

// DefaultIndexPage returns the chat page data for college.
func DefaultIndexPage(college string, provider models.ProviderKind) IndexPage {
	return IndexPage{
		College:  college,
		Provider: provider,
		QuickAsks: []string{
			"What are the revaluation fees?",
			"Tell me about placement drives",
			"What is the hostel fee?",
			"Minimum attendance required?",
		},
		Suggestions: []string{"Exam schedule", "Library hours", "Fee structure"},
	}
}

// RenderIndex writes the chat page.
func RenderIndex(w io.Writer, page IndexPage) error {
	if err := templates.ExecuteTemplate(w, "index.html", page); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}
