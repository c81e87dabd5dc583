package services

import (
	"context"
	"strings"
	"testing"

	"campusai/models"
)

type stubProcessor struct {
	resp      models.ChatResponse
	err       error
	sessionID string
	userName  string
	cfg       models.ProviderConfig
}

func (s *stubProcessor) ProcessMessage(ctx context.Context, sessionID, message, userName string, cfg models.ProviderConfig) (models.ChatResponse, error) {
	s.sessionID, s.userName, s.cfg = sessionID, userName, cfg
	return s.resp, s.err
}

func TestExtractQuery(t *testing.T) {
	d := NewDiscordService(models.DiscordConfig{}, &stubProcessor{}, DefaultProviderConfig())

	tests := []struct {
		content string
		query   string
		ok      bool
	}{
		{"!campus what is the hostel fee?", "what is the hostel fee?", true},
		{"!campus    ", "", true},
		{"!chat hello", "", false},
		{"hello !campus fee", "", false},
	}
	for _, tt := range tests {
		q, ok := d.extractQuery(tt.content)
		if q != tt.query || ok != tt.ok {
			t.Errorf("extractQuery(%q) = %q, %v; want %q, %v", tt.content, q, ok, tt.query, tt.ok)
		}
	}
}

func TestDiscordAnswer(t *testing.T) {
	stub := &stubProcessor{resp: models.ChatResponse{
		Message: "Fees are due.",
		Sources: []models.SourceCitation{{DocumentID: DocFeeStructure, Title: "Fee Structure 2025", Section: "Annual Fee Structure"}},
	}}
	defaults := models.ProviderConfig{Kind: models.ProviderOpenAI, Credential: "k"}
	d := NewDiscordService(models.DiscordConfig{CommandPrefix: "?ask "}, stub, defaults)

	reply := d.answer("u1", "asha", "c9", "fees?")
	if !strings.HasPrefix(reply, "Fees are due.") || !strings.Contains(reply, "Fee Structure 2025 (Annual Fee Structure)") {
		t.Errorf("unexpected reply %q", reply)
	}
	if stub.sessionID != "discord_u1_c9" || stub.userName != "asha" || stub.cfg != defaults {
		t.Errorf("unexpected call %+v", stub)
	}

	stub.err = ErrBusy
	if reply := d.answer("u1", "asha", "c9", "again"); !strings.Contains(reply, "previous question") {
		t.Errorf("unexpected busy reply %q", reply)
	}

	stub.err = ErrEmptyMessage
	if reply := d.answer("u1", "asha", "c9", " "); reply != "" {
		t.Errorf("expected no reply, got %q", reply)
	}
}

func TestSplitMessage(t *testing.T) {
	words := strings.Repeat("campus ", 700) // 4900 bytes
	chunks := splitMessage(words, 1900)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	total := 0
	for i, c := range chunks {
		if len(c) > 1900 {
			t.Errorf("chunk %d has %d bytes", i, len(c))
		}
		if strings.HasPrefix(c, " ") {
			t.Errorf("chunk %d starts with a space", i)
		}
		total += len(strings.Fields(c))
	}
	if total != 700 {
		t.Errorf("words lost while splitting: %d", total)
	}

	if got := splitMessage("short", 1900); len(got) != 1 || got[0] != "short" {
		t.Errorf("short message split: %v", got)
	}
}

func TestDiscordDisabledStatus(t *testing.T) {
	d := NewDiscordService(models.DiscordConfig{}, &stubProcessor{}, DefaultProviderConfig())

	if d.IsEnabled() {
		t.Fatal("expected disabled service without token")
	}
	if err := d.Start(); err == nil {
		t.Error("expected Start to fail without token")
	}
	status := d.GetStatus()
	if status.State != "disabled" || status.CommandPrefix != DefaultCommandPrefix {
		t.Errorf("unexpected status %+v", status)
	}
	if err := d.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
