package services

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"campusai/models"
)

func TestProviderErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ProviderError
		want string
	}{
		{
			name: "http status",
			err:  &ProviderError{Kind: models.ProviderOpenAI, Op: "chat/completions", StatusCode: 401, Message: "invalid key"},
			want: "openai chat/completions: 401 invalid key",
		},
		{
			name: "wrapped",
			err:  &ProviderError{Kind: models.ProviderGemini, Op: "generateContent", Message: "request failed", Err: io.ErrUnexpectedEOF},
			want: "gemini generateContent: request failed: unexpected EOF",
		},
		{
			name: "plain",
			err:  &ProviderError{Kind: models.ProviderAnthropic, Message: "missing credential"},
			want: "anthropic: missing credential",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsProviderError(t *testing.T) {
	pe := &ProviderError{Kind: models.ProviderGemini, Message: "x", Err: io.EOF}
	wrapped := fmt.Errorf("chat: %w", pe)

	if !IsProviderError(wrapped) {
		t.Error("expected wrapped provider error to be detected")
	}
	if !errors.Is(wrapped, io.EOF) {
		t.Error("expected Unwrap to expose the cause")
	}
	if IsProviderError(ErrBusy) || IsProviderError(nil) {
		t.Error("unexpected provider error")
	}
}
