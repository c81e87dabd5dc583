package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"campusai/models"
)

// topic is one keyword rule of the dispatcher
type topic struct {
	name       string
	keywords   []string
	documentID string
	section    string
	render     func(kb *KnowledgeBase) string
}

// greetingRx matches greeting words on their own, so "this" or "which" do
// not count as "hi".
var greetingRx = regexp.MustCompile(`\b(hello|hi|hey)\b`)

var acknowledgements = []string{
	"You're welcome! 😊 Feel free to ask if you have more questions about college policies or procedures.",
	"Happy to help! Ask me anything else about fees, exams, placements or campus life.",
	"Glad I could help! 🎓 Good luck with your studies.",
}

// topics in priority order; the first match wins.
var topics = []topic{
	{
		name:       "revaluation",
		keywords:   []string{"revaluation", "reval"},
		documentID: DocAcademicRegulations,
		section:    "Revaluation Procedure",
		render:     renderRevaluation,
	},
	{
		name:       "placement",
		keywords:   []string{"placement", "job", "drive", "company"},
		documentID: DocPlacementGuidelines,
		section:    "Upcoming Placement Drives",
		render:     renderPlacements,
	},
	{
		name:       "fee",
		keywords:   []string{"fee", "payment", "tuition", "scholarship", "money"},
		documentID: DocFeeStructure,
		section:    "Annual Fee Structure",
		render:     renderFees,
	},
	{
		name:       "hostel",
		keywords:   []string{"hostel", "accommodation", "mess", "room"},
		documentID: DocHostelFacilities,
		section:    "Hostel Accommodation",
		render:     renderHostel,
	},
	{
		name:       "attendance",
		keywords:   []string{"attendance", "minimum", "absent", "percent"},
		documentID: DocAcademicRegulations,
		section:    "Attendance Requirements",
		render:     renderAttendance,
	},
	{
		name:       "exam",
		keywords:   []string{"exam", "test", "semester", "schedule"},
		documentID: DocAcademicRegulations,
		section:    "Examination Schedule",
		render:     renderExams,
	},
	{
		name:       "library",
		keywords:   []string{"library", "book", "study"},
		documentID: DocLibraryServices,
		section:    "Library Services",
		render:     renderLibrary,
	},
}

// citationTopics maps words found in provider output to the topic whose
// citation they imply.
var citationTopics = []struct {
	words []string
	topic string
}{
	{[]string{"academic", "exam", "attendance", "revaluation"}, "exam"},
	{[]string{"placement", "job"}, "placement"},
	{[]string{"fee", "payment"}, "fee"},
	{[]string{"hostel"}, "hostel"},
	{[]string{"library"}, "library"},
}

// DispatcherOption configures a ResponseDispatcher
type DispatcherOption func(*ResponseDispatcher)

// WithChooser sets how one of several equivalent replies is picked.
// choose receives the number of candidates and returns an index.
func WithChooser(choose func(n int) int) DispatcherOption {
	return func(d *ResponseDispatcher) {
		if choose != nil {
			d.choose = choose
		}
	}
}

// ResponseDispatcher maps queries to templated answers by keyword rules
type ResponseDispatcher struct {
	kb     *KnowledgeBase
	index  *DocumentIndex
	choose func(n int) int
}

// NewResponseDispatcher creates a dispatcher answering from kb and citing
// documents in index. By default the first acknowledgement is always used.
func NewResponseDispatcher(kb *KnowledgeBase, index *DocumentIndex, opts ...DispatcherOption) *ResponseDispatcher {
	d := &ResponseDispatcher{
		kb:     kb,
		index:  index,
		choose: func(int) int { return 0 },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate selects the canned answer for query. userName personalizes the
// greeting and may be empty.
func (d *ResponseDispatcher) Generate(query, userName string) models.Response {
	q := strings.ToLower(query)

	if greetingRx.MatchString(q) {
		return noSources(d.greeting(userName))
	}

	if strings.Contains(q, "thank") {
		i := d.choose(len(acknowledgements))
		if i < 0 || i >= len(acknowledgements) {
			i = 0
		}
		return noSources(acknowledgements[i])
	}

	for _, t := range topics {
		if containsAny(q, t.keywords) {
			return models.Response{
				Text:    t.render(d.kb),
				Sources: []models.SourceCitation{d.cite(t)},
			}
		}
	}

	return noSources(d.fallback(query))
}

// CitationsFor derives citations from free text produced by a remote
// provider. Each document is cited at most once.
func (d *ResponseDispatcher) CitationsFor(text string) []models.SourceCitation {
	lower := strings.ToLower(text)
	seen := map[string]bool{}
	out := []models.SourceCitation{}

	for _, ct := range citationTopics {
		if !containsAny(lower, ct.words) {
			continue
		}
		t, ok := topicByName(ct.topic)
		if !ok || seen[t.documentID] {
			continue
		}
		seen[t.documentID] = true
		out = append(out, d.cite(t))
	}
	return out
}

func (d *ResponseDispatcher) cite(t topic) models.SourceCitation {
	c := models.SourceCitation{DocumentID: t.documentID, Section: t.section}
	if doc, ok := d.index.Get(t.documentID); ok {
		c.Title = doc.Title
	} else {
		c.Title = t.documentID
	}
	return c
}

func (d *ResponseDispatcher) greeting(userName string) string {
	opening := "Hello! 👋 I'm your AI-powered Campus Assistant."
	if name := strings.TrimSpace(userName); name != "" {
		opening = fmt.Sprintf("Hello, %s! 👋 I'm your AI-powered Campus Assistant.", neutralizeEcho(name))
	}
	return opening + "\n\nI can help you with:\n" +
		"**📚 Academic** - Exams, regulations\n" +
		"**💰 Financial** - Fees, scholarships\n" +
		"**💼 Placements** - Drives, eligibility\n" +
		"**🏠 Campus** - Hostel, library\n\n" +
		"What would you like to know?"
}

func (d *ResponseDispatcher) fallback(query string) string {
	return fmt.Sprintf("I understand you're asking about \"%s\".\n\n", neutralizeEcho(query)) +
		"**I can help with:**\n" +
		"• Academic regulations & exams\n" +
		"• Fee structures & scholarships\n" +
		"• Placement drives & eligibility\n" +
		"• Hostel facilities & rules\n" +
		"• Library services\n" +
		"• Attendance requirements\n\n" +
		"**Try asking:**\n" +
		"• \"What are the revaluation fees?\"\n" +
		"• \"Tell me about placement drives\"\n" +
		"• \"What is the hostel fee?\"\n" +
		"• \"Minimum attendance required?\"\n\n" +
		"How can I assist you?"
}

// neutralizeEcho prepares user text for embedding in system text: line
// breaks collapse to spaces and '*' becomes U+2217 so no formatting
// directive can be triggered. HTML escaping happens at render time.
func neutralizeEcho(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "*", "∗")
}

func renderRevaluation(kb *KnowledgeBase) string {
	r := kb.Revaluation
	return fmt.Sprintf("**📋 Revaluation Information:**\n\n"+
		"**Fee:** Rs. %d per subject\n"+
		"**Deadline:** %s\n"+
		"**Process:** %s\n"+
		"**Timeline:** %s\n"+
		"**Refundable:** %s\n\n"+
		"**Important Notes:**\n"+
		"• Apply online through student portal\n"+
		"• Late applications will not be accepted\n"+
		"• Results may increase, decrease, or remain same",
		r.Fee, r.Deadline, r.Process, r.Timeline, yesNo(r.Refundable))
}

func renderPlacements(kb *KnowledgeBase) string {
	p := kb.Placements
	companies := make([]string, len(p.Companies))
	for i, c := range p.Companies {
		companies[i] = fmt.Sprintf("• **%s** - %s\n  CGPA: %s+ | Package: %s\n  Roles: %s",
			c.Name, c.Date, humanize.Ftoa(c.CGPA), c.Package, strings.Join(c.Roles, ", "))
	}
	if len(companies) == 0 {
		companies = []string{"• No drives are scheduled yet"}
	}
	return fmt.Sprintf("**💼 Upcoming Placement Drives:**\n\n%s\n\n"+
		"**Eligibility:** %s\n\n"+
		"**Preparation Support:**\n"+
		"• Mock interviews every Friday\n"+
		"• Resume building workshops\n"+
		"• Technical skill enhancement\n"+
		"• Aptitude test preparation\n\n"+
		"📧 Contact: %s",
		strings.Join(companies, "\n\n"), p.Eligibility, p.ContactEmail)
}

func renderFees(kb *KnowledgeBase) string {
	f := kb.Fees
	return fmt.Sprintf("**💰 Annual Fee Structure (B.E):**\n\n"+
		"• **Tuition Fee:** Rs. %s\n"+
		"• **Development Fee:** Rs. %s\n"+
		"• **Laboratory Fee:** Rs. %s\n"+
		"• **Library Fee:** Rs. %s\n\n"+
		"**Total:** Rs. %s per annum\n\n"+
		"**Payment Schedule:** %s\n"+
		"**Late Fee:** Rs. %d per month\n\n"+
		"**Scholarships Available:**\n"+
		"• Merit scholarships (CGPA > 8.5)\n"+
		"• Need-based financial aid\n"+
		"• Sports scholarships",
		rupees(f.Tuition), rupees(f.Development), rupees(f.Lab), rupees(f.Library),
		rupees(f.Total), f.Installments, f.LateFee)
}

func renderHostel(kb *KnowledgeBase) string {
	h := kb.Hostel
	return fmt.Sprintf("**🏠 Hostel Accommodation:**\n\n"+
		"**Room Types (Monthly):**\n"+
		"• Single: Rs. %d\n"+
		"• Double: Rs. %d\n"+
		"• Triple: Rs. %d\n\n"+
		"**Mess:** Rs. %d/month\n"+
		"**Security Deposit:** Rs. %d (refundable)\n\n"+
		"**Facilities:**\n%s\n\n"+
		"**Rules:**\n"+
		"• In-time: %s\n"+
		"• Visitor hours: %s",
		h.Single, h.Double, h.Triple, h.Mess, h.SecurityDeposit,
		bullets(h.Facilities), h.InTime, h.VisitorHours)
}

func renderAttendance(kb *KnowledgeBase) string {
	a := kb.Attendance
	return fmt.Sprintf("**📊 Attendance Requirements:**\n\n"+
		"**Minimum Required:** %d%%\n"+
		"**Warning Level:** %d%%\n"+
		"**Consequences:** %s\n\n"+
		"**Medical Leave:**\n%s\n\n"+
		"**Monitoring:**\n"+
		"• Weekly SMS updates\n"+
		"• Monthly reports to parents\n"+
		"• Real-time portal updates",
		a.Minimum, a.WarningLevel, a.Consequences, a.MedicalLeaveDeadline)
}

func renderExams(kb *KnowledgeBase) string {
	e := kb.Exams
	return fmt.Sprintf("**📚 Examination Schedule:**\n\n"+
		"**Semester Exams:**\n"+
		"• Even Semester: %s\n"+
		"• Odd Semester: %s\n"+
		"• Duration: %s\n\n"+
		"**Assessment:**\n"+
		"• Internal: %d%%\n"+
		"• External: %d%%\n\n"+
		"**Hall Ticket:**\n"+
		"• Released 1 week before exams\n"+
		"• Download from student portal\n"+
		"• Requires %d%% attendance + fee clearance",
		e.EvenSemester, e.OddSemester, e.Duration, e.Internal, e.External, kb.Attendance.Minimum)
}

func renderLibrary(kb *KnowledgeBase) string {
	l := kb.Library
	return fmt.Sprintf("**📖 Library Services:**\n\n"+
		"**Collection:** %s\n"+
		"**Hours:** %s\n"+
		"**Lending:** %s\n"+
		"**Fine:** %s\n\n"+
		"**Digital Resources:**\n%s\n\n"+
		"📧 Contact: %s",
		l.Collection, l.Hours, l.Lending, l.Fine, bullets(l.DigitalResources), l.ContactEmail)
}

func topicByName(name string) (topic, bool) {
	for _, t := range topics {
		if t.name == name {
			return t, true
		}
	}
	return topic{}, false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func noSources(text string) models.Response {
	return models.Response{Text: text, Sources: []models.SourceCitation{}}
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}

func rupees(n int) string {
	return humanize.Comma(int64(n))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
