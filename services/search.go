package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"campusai/models"
)

// Document ids referenced by the dispatcher's citations
const (
	DocAcademicRegulations = "academic_regulations"
	DocPlacementGuidelines = "placement_guidelines"
	DocFeeStructure        = "fee_structure"
	DocHostelFacilities    = "hostel_facilities"
	DocLibraryServices     = "library_services"
)

// MaxSearchResults caps the number of documents Search returns
const MaxSearchResults = 3

// Scoring weights
const (
	tagWeight   = 3
	titleWeight = 2
	wordWeight  = 1
	minWordLen  = 4 // Words must be longer than 3 runes to count
)

// DocumentIndex ranks a fixed, read-only collection of documents by keyword
// overlap. It never mutates its documents and is safe for concurrent use.
type DocumentIndex struct {
	docs []models.Document
	byID map[string]int
}

// NewDocumentIndex builds an index over docs. Document ids must be unique.
func NewDocumentIndex(docs []models.Document) (*DocumentIndex, error) {
	idx := &DocumentIndex{
		docs: make([]models.Document, len(docs)),
		byID: make(map[string]int, len(docs)),
	}
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("document %d has no id", i)
		}
		if _, dup := idx.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate document id %q", d.ID)
		}
		d.Tags = append([]string(nil), d.Tags...)
		idx.docs[i] = d
		idx.byID[d.ID] = i
	}
	return idx, nil
}

// Search scores every document against query and returns at most three with
// a positive score, highest first. Equal scores keep collection order.
func (x *DocumentIndex) Search(query string) []models.ScoredDocument {
	q := strings.ToLower(query)
	words := strings.Fields(q)

	var scored []models.ScoredDocument
	for _, d := range x.docs {
		if s := scoreDocument(d, q, words); s > 0 {
			scored = append(scored, models.ScoredDocument{Document: d, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > MaxSearchResults {
		scored = scored[:MaxSearchResults]
	}
	return scored
}

// scoreDocument expects q already lowercased and split into words.
func scoreDocument(d models.Document, q string, words []string) int {
	score := 0

	for _, tag := range d.Tags {
		if tag != "" && strings.Contains(q, tag) {
			score += tagWeight
		}
	}

	// Title-in-query only; the reverse direction would match every title on
	// an empty query.
	if title := strings.ToLower(d.Title); title != "" && strings.Contains(q, title) {
		score += titleWeight
	}

	content := strings.ToLower(d.Content)
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minWordLen && strings.Contains(content, w) {
			score += wordWeight
		}
	}

	return score
}

// Get returns the document with the given id.
func (x *DocumentIndex) Get(id string) (models.Document, bool) {
	i, ok := x.byID[id]
	if !ok {
		return models.Document{}, false
	}
	return x.docs[i], true
}

// All returns a copy of the collection in its original order.
func (x *DocumentIndex) All() []models.Document {
	out := make([]models.Document, len(x.docs))
	copy(out, x.docs)
	return out
}

// Len returns the number of indexed documents.
func (x *DocumentIndex) Len() int {
	return len(x.docs)
}

// DefaultDocuments derives the five citable documents from kb.
func DefaultDocuments(kb *KnowledgeBase) []models.Document {
	return []models.Document{
		{
			ID:    DocAcademicRegulations,
			Title: "Academic Regulations 2025",
			Content: fmt.Sprintf(
				"Revaluation of answer scripts costs Rs. %d per subject and must be requested within %s. "+
					"Applications are made %s. Minimum attendance of %d%% is required; below %d%% students are warned. "+
					"%s. Even semester examinations are held in %s and odd semester examinations in %s, "+
					"with %d%% internal and %d%% external assessment.",
				kb.Revaluation.Fee, kb.Revaluation.Deadline, strings.ToLower(kb.Revaluation.Process),
				kb.Attendance.Minimum, kb.Attendance.WarningLevel, kb.Attendance.Consequences,
				kb.Exams.EvenSemester, kb.Exams.OddSemester, kb.Exams.Internal, kb.Exams.External,
			),
			Tags: []string{"revaluation", "attendance", "exam", "semester", "regulation", "grading"},
		},
		{
			ID:    DocPlacementGuidelines,
			Title: "Placement Cell Guidelines 2025",
			Content: fmt.Sprintf(
				"The placement cell organises campus recruitment drives with companies such as %s. "+
					"Eligibility: %s. Mock interviews, resume workshops and aptitude training are offered. Contact %s.",
				strings.Join(driveNames(kb.Placements.Companies), ", "), kb.Placements.Eligibility, kb.Placements.ContactEmail,
			),
			Tags: []string{"placement", "job", "drive", "company", "recruitment", "internship"},
		},
		{
			ID:    DocFeeStructure,
			Title: "Fee Structure 2025",
			Content: fmt.Sprintf(
				"Annual tuition fee is Rs. %d with development, laboratory and library charges for a total of Rs. %d. "+
					"Payment schedule: %s. A late fee of Rs. %d per month applies. Merit, need-based and sports scholarships are available.",
				kb.Fees.Tuition, kb.Fees.Total, kb.Fees.Installments, kb.Fees.LateFee,
			),
			Tags: []string{"fee", "tuition", "payment", "scholarship"},
		},
		{
			ID:    DocHostelFacilities,
			Title: "Hostel Facilities 2025",
			Content: fmt.Sprintf(
				"Hostel accommodation offers single, double and triple rooms. Mess charges are Rs. %d per month. "+
					"Facilities include %s. In-time is %s and visitors are allowed %s.",
				kb.Hostel.Mess, strings.Join(kb.Hostel.Facilities, ", "), kb.Hostel.InTime, kb.Hostel.VisitorHours,
			),
			Tags: []string{"hostel", "accommodation", "mess", "room"},
		},
		{
			ID:    DocLibraryServices,
			Title: "Library Services Guide 2025",
			Content: fmt.Sprintf(
				"The central library holds %s and is open %s. Students may borrow %s; the overdue fine is %s. "+
					"Digital resources include %s.",
				kb.Library.Collection, kb.Library.Hours, kb.Library.Lending, kb.Library.Fine,
				strings.Join(kb.Library.DigitalResources, ", "),
			),
			Tags: []string{"library", "book", "journal", "study"},
		},
	}
}

func driveNames(drives []PlacementDrive) []string {
	names := make([]string, len(drives))
	for i, d := range drives {
		names[i] = d.Name
	}
	return names
}
