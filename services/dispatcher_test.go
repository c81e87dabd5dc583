package services

import (
	"strings"
	"testing"
)

func newTestDispatcher(t *testing.T, opts ...DispatcherOption) *ResponseDispatcher {
	t.Helper()
	kb := DefaultKnowledgeBase()
	return NewResponseDispatcher(kb, mustIndex(t, DefaultDocuments(kb)), opts...)
}

func TestGenerateTopics(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		name     string
		query    string
		document string
		section  string
		contains []string
	}{
		{"revaluation", "What are the revaluation fees?", DocAcademicRegulations, "Revaluation Procedure", []string{"Rs. 1000 per subject", "**Refundable:** No"}},
		{"revaluation short form", "reval deadline", DocAcademicRegulations, "Revaluation Procedure", []string{"15 days from result declaration"}},
		{"placement", "Tell me about placement drives", DocPlacementGuidelines, "Upcoming Placement Drives", []string{"**TCS**", "CGPA: 6+", "CGPA: 7.5+", "SDE-1"}},
		{"fee wins over hostel", "What is the hostel fee?", DocFeeStructure, "Annual Fee Structure", []string{"Rs. 120,000", "Rs. 145,000 per annum"}},
		{"hostel", "Which room types exist?", DocHostelFacilities, "Hostel Accommodation", []string{"Single: Rs. 8000", "Gymnasium"}},
		{"attendance", "Minimum attendance required?", DocAcademicRegulations, "Attendance Requirements", []string{"75%", "65%"}},
		{"exam", "When is the semester exam?", DocAcademicRegulations, "Examination Schedule", []string{"April - May", "Internal: 40%"}},
		{"library", "Library hours", DocLibraryServices, "Library Services", []string{"8:00 AM - 8:00 PM", "NPTEL Videos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Generate(tt.query, "")

			if len(resp.Sources) != 1 {
				t.Fatalf("expected one source, got %+v", resp.Sources)
			}
			src := resp.Sources[0]
			if src.DocumentID != tt.document || src.Section != tt.section {
				t.Errorf("source = %+v, want %s / %s", src, tt.document, tt.section)
			}
			for _, s := range tt.contains {
				if !strings.Contains(resp.Text, s) {
					t.Errorf("response does not contain %q:\n%s", s, resp.Text)
				}
			}
		})
	}
}

func TestGenerateCitationTitles(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Generate("revaluation", "")
	if got := resp.Sources[0].Title; got != "Academic Regulations 2025" {
		t.Errorf("title = %q", got)
	}
}

func TestGenerateGreeting(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		name  string
		query string
		user  string
		want  string
	}{
		{"generic", "hello there", "", "Hello! 👋"},
		{"personalized", "Hi", "Asha", "Hello, Asha! 👋"},
		{"greeting beats topics", "hey, what is the fee?", "", "Hello! 👋"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Generate(tt.query, tt.user)
			if !strings.HasPrefix(resp.Text, tt.want) {
				t.Errorf("expected prefix %q, got %q", tt.want, resp.Text)
			}
			if resp.Sources == nil || len(resp.Sources) != 0 {
				t.Errorf("expected empty sources, got %#v", resp.Sources)
			}
		})
	}
}

func TestGenerateGreetingNeedsWholeWord(t *testing.T) {
	d := newTestDispatcher(t)

	// "which" and "this" contain "hi" but are not greetings.
	resp := d.Generate("which fee is this", "")
	if !resp.HasSources() || resp.Sources[0].DocumentID != DocFeeStructure {
		t.Fatalf("expected fee answer, got %q", resp.Text)
	}
}

func TestGenerateThanks(t *testing.T) {
	resp := newTestDispatcher(t).Generate("thanks a lot", "")
	if resp.Text != acknowledgements[0] {
		t.Errorf("expected first acknowledgement, got %q", resp.Text)
	}
	if resp.HasSources() {
		t.Errorf("expected no sources")
	}

	chosen := newTestDispatcher(t, WithChooser(func(n int) int { return n - 1 })).Generate("thank you", "")
	if chosen.Text != acknowledgements[len(acknowledgements)-1] {
		t.Errorf("chooser ignored, got %q", chosen.Text)
	}

	outOfRange := newTestDispatcher(t, WithChooser(func(int) int { return 99 })).Generate("thank you", "")
	if outOfRange.Text != acknowledgements[0] {
		t.Errorf("out of range choice should fall back to first, got %q", outOfRange.Text)
	}
}

func TestGenerateFallback(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Generate("Where is the canteen?", "")
	if !strings.HasPrefix(resp.Text, `I understand you're asking about "Where is the canteen?".`) {
		t.Errorf("unexpected fallback: %q", resp.Text)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Errorf("expected empty sources, got %#v", resp.Sources)
	}
}

func TestGenerateFallbackNeutralizesEcho(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Generate("**bold**\nnext line", "")
	if strings.Contains(resp.Text, "**bold**") {
		t.Fatalf("echoed query kept a bold directive: %q", resp.Text)
	}
	if !strings.Contains(resp.Text, `"∗∗bold∗∗ next line"`) {
		t.Errorf("unexpected echo: %q", resp.Text)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := newTestDispatcher(t)
	for _, q := range []string{"hello", "thanks", "fee", "unknown topic"} {
		a, b := d.Generate(q, "x"), d.Generate(q, "x")
		if a.Text != b.Text {
			t.Errorf("Generate(%q) not deterministic", q)
		}
	}
}

func TestCitationsFor(t *testing.T) {
	d := newTestDispatcher(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "I can't help with that.", nil},
		{"several in topic order", "The hostel fee is due before the exam.", []string{DocAcademicRegulations, DocFeeStructure, DocHostelFacilities}},
		{"deduplicated", "Attendance affects revaluation and academic standing.", []string{DocAcademicRegulations}},
		{"placement", "Many job offers come through placement.", []string{DocPlacementGuidelines}},
		{"library", "The LIBRARY is open late.", []string{DocLibraryServices}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.CitationsFor(tt.text)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %v", got, tt.want)
			}
			for i, c := range got {
				if c.DocumentID != tt.want[i] {
					t.Errorf("citation %d = %s, want %s", i, c.DocumentID, tt.want[i])
				}
			}
		})
	}
}

func TestNeutralizeEcho(t *testing.T) {
	tests := map[string]string{
		"plain":              "plain",
		"a  b\n\tc":          "a b c",
		"*x*":                "∗x∗",
		"<script>x</script>": "<script>x</script>",
	}
	for in, want := range tests {
		if got := neutralizeEcho(in); got != want {
			t.Errorf("neutralizeEcho(%q) = %q, want %q", in, got, want)
		}
	}
}
