package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"campusai/models"

	"github.com/PuerkitoBio/goquery"
)

func TestFormatSystemText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"bold", "**Fees:** due", "<strong>Fees:</strong> due"},
		{"newline", "a\nb", "a<br>b"},
		{"markup escaped", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"bold around markup", "**<img src=x>**", "<strong>&lt;img src=x&gt;</strong>"},
		{"unpaired stars", "5 * 3 ** 2", "5 * 3 ** 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(FormatSystemText(tt.in)); got != tt.want {
				t.Errorf("FormatSystemText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderTranscript(t *testing.T) {
	at := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	entries := []models.ConversationEntry{
		{Role: models.RoleUser, Content: "<script>alert('x')</script> **hi**", Timestamp: at},
		{
			Role:      models.RoleAssistant,
			Content:   "**Hostel fees**\nSingle: ₹8,000",
			Timestamp: at,
			Sources:   []models.SourceCitation{{Title: "Hostel Rules"}},
		},
	}

	var buf bytes.Buffer
	if err := RenderTranscript(&buf, "sess_1", entries); err != nil {
		t.Fatalf("RenderTranscript: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if n := doc.Find("#messages script").Length(); n != 0 {
		t.Errorf("found %d script elements in messages", n)
	}

	user := doc.Find(".user-message .message-text")
	if got := user.Text(); got != "<script>alert('x')</script> **hi**" {
		t.Errorf("user text = %q", got)
	}
	if user.Find("strong").Length() != 0 {
		t.Error("user text must not be formatted")
	}

	ai := doc.Find(".ai-message .message-text")
	if ai.Find("strong").Length() != 1 || ai.Find("br").Length() != 1 {
		t.Errorf("assistant formatting missing: %q", ai.Text())
	}
	if got := doc.Find(".source-chip").Text(); got != "Hostel Rules" {
		t.Errorf("source chips = %q", got)
	}
	if got := doc.Find(".message-time").First().Text(); got != "09:30" {
		t.Errorf("time = %q", got)
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTranscript(&buf, "sess_1", nil); err != nil {
		t.Fatalf("RenderTranscript: %v", err)
	}
	if !strings.Contains(buf.String(), "No messages yet.") {
		t.Error("expected empty placeholder")
	}
}

func TestRenderIndex(t *testing.T) {
	var buf bytes.Buffer
	page := DefaultIndexPage("Oxford <College>", models.ProviderLocal)
	if err := RenderIndex(&buf, page); err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(doc.Text(), "Oxford <College>") {
		t.Error("college name not rendered as text")
	}
	if strings.Contains(buf.String(), "Oxford <College>") {
		t.Error("college name was not escaped")
	}
}
