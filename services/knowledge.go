package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// College holds the institution's contact details
type College struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// RevaluationPolicy describes how answer-script revaluation works
type RevaluationPolicy struct {
	Fee        int    `json:"fee"`
	Deadline   string `json:"deadline"`
	Process    string `json:"process"`
	Timeline   string `json:"timeline"`
	Refundable bool   `json:"refundable"`
}

// FeeStructure is the annual B.E. fee breakdown in rupees
type FeeStructure struct {
	Tuition      int    `json:"tuition"`
	Development  int    `json:"development"`
	Lab          int    `json:"lab"`
	Library      int    `json:"library"`
	Total        int    `json:"total"`
	Installments string `json:"installments"`
	LateFee      int    `json:"lateFee"`
}

// PlacementDrive is one company visiting campus
type PlacementDrive struct {
	Name    string   `json:"name"`
	Date    string   `json:"date"`
	CGPA    float64  `json:"cgpa"`
	Package string   `json:"package"`
	Roles   []string `json:"roles"`
}

// Placements lists upcoming drives and general eligibility
type Placements struct {
	Companies    []PlacementDrive `json:"companies"`
	Eligibility  string           `json:"eligibility"`
	ContactEmail string           `json:"contactEmail"`
}

// Hostel holds monthly room rates and rules
type Hostel struct {
	Single          int      `json:"single"`
	Double          int      `json:"double"`
	Triple          int      `json:"triple"`
	Mess            int      `json:"mess"`
	SecurityDeposit int      `json:"securityDeposit"`
	Facilities      []string `json:"facilities"`
	InTime          string   `json:"inTime"`
	VisitorHours    string   `json:"visitorHours"`
}

// Attendance is the attendance policy
type Attendance struct {
	Minimum              int    `json:"minimum"`
	WarningLevel         int    `json:"warningLevel"`
	Consequences         string `json:"consequences"`
	MedicalLeaveDeadline string `json:"medicalLeaveDeadline"`
}

// Exams is the examination calendar and weighting
type Exams struct {
	EvenSemester string `json:"evenSemester"`
	OddSemester  string `json:"oddSemester"`
	Internal     int    `json:"internal"`
	External     int    `json:"external"`
	Duration     string `json:"duration"`
}

// Library describes library services
type Library struct {
	Collection       string   `json:"collection"`
	Hours            string   `json:"hours"`
	Lending          string   `json:"lending"`
	Fine             string   `json:"fine"`
	DigitalResources []string `json:"digitalResources"`
	ContactEmail     string   `json:"contactEmail"`
}

// KnowledgeBase is the static set of college facts answers are built from.
// It is populated once at start-up and only read afterwards.
type KnowledgeBase struct {
	College     College           `json:"college"`
	Revaluation RevaluationPolicy `json:"revaluation"`
	Fees        FeeStructure      `json:"fees"`
	Placements  Placements        `json:"placements"`
	Hostel      Hostel            `json:"hostel"`
	Attendance  Attendance        `json:"attendance"`
	Exams       Exams             `json:"exams"`
	Library     Library           `json:"library"`

	drivesSource string
}

// DefaultKnowledgeBase returns the built-in college facts.
func DefaultKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		College: College{
			Name:     "The Oxford College of Engineering",
			Location: "Bengaluru, Karnataka",
			Email:    "info@oxfordcollege.edu.in",
			Phone:    "+91-80-12345678",
		},
		Revaluation: RevaluationPolicy{
			Fee:        1000,
			Deadline:   "15 days from result declaration",
			Process:    "Online through student portal",
			Timeline:   "Results within 30 days",
			Refundable: false,
		},
		Fees: FeeStructure{
			Tuition:      120000,
			Development:  15000,
			Lab:          8000,
			Library:      2000,
			Total:        145000,
			Installments: "60% by June 30, 40% by Dec 31",
			LateFee:      500,
		},
		Placements: Placements{
			Companies: []PlacementDrive{
				{Name: "TCS", Date: "Oct 15-16, 2025", CGPA: 6.0, Package: "3.5-7 LPA", Roles: []string{"Software Engineer", "System Engineer"}},
				{Name: "Infosys", Date: "Oct 20-22, 2025", CGPA: 6.5, Package: "4-8 LPA", Roles: []string{"Software Developer"}},
				{Name: "Wipro", Date: "Oct 25-27, 2025", CGPA: 6.0, Package: "3.8-6.5 LPA", Roles: []string{"Project Engineer"}},
				{Name: "Amazon", Date: "Nov 5-6, 2025", CGPA: 7.5, Package: "12-18 LPA", Roles: []string{"SDE-1"}},
				{Name: "Microsoft", Date: "Nov 12-13, 2025", CGPA: 8.0, Package: "15-25 LPA", Roles: []string{"Software Engineer"}},
			},
			Eligibility:  "75% attendance, no backlogs, minimum CGPA varies by company",
			ContactEmail: "placement@oxfordcollege.edu.in",
		},
		Hostel: Hostel{
			Single:          8000,
			Double:          5000,
			Triple:          3500,
			Mess:            4500,
			SecurityDeposit: 10000,
			Facilities: []string{
				"24/7 WiFi",
				"Gymnasium",
				"Medical room",
				"Common room",
				"Laundry service",
				"24/7 Security",
			},
			InTime:       "10:30 PM weekdays, 11:00 PM weekends",
			VisitorHours: "10:00 AM - 6:00 PM",
		},
		Attendance: Attendance{
			Minimum:              75,
			WarningLevel:         65,
			Consequences:         "Cannot appear for semester exams if below 75%",
			MedicalLeaveDeadline: "Apply within 7 days with certificate",
		},
		Exams: Exams{
			EvenSemester: "April - May",
			OddSemester:  "November - December",
			Internal:     40,
			External:     60,
			Duration:     "3 hours per paper",
		},
		Library: Library{
			Collection: "50,000+ books and journals",
			Hours:      "8:00 AM - 8:00 PM (Mon-Sat)",
			Lending:    "3 books for 15 days",
			Fine:       "Rs. 2 per day for overdue",
			DigitalResources: []string{
				"IEEE Digital Library",
				"Springer Journals",
				"ACM Digital Library",
				"NPTEL Videos",
			},
			ContactEmail: "library@oxfordcollege.edu.in",
		},
		drivesSource: "built-in",
	}
}

// LoadKnowledgeBase returns the built-in facts, with the placement drives
// replaced from drivesXLSX when a path is given. A workbook that cannot be
// read is logged and the built-in drives are kept.
func LoadKnowledgeBase(drivesXLSX string) *KnowledgeBase {
	kb := DefaultKnowledgeBase()
	if drivesXLSX == "" {
		return kb
	}

	drives, err := ReadPlacementDrives(drivesXLSX)
	if err != nil {
		log.Printf("Could not import placement drives from %s: %v (keeping built-in list)", drivesXLSX, err)
		return kb
	}
	if len(drives) == 0 {
		log.Printf("No placement drives found in %s, keeping built-in list", drivesXLSX)
		return kb
	}

	kb.Placements.Companies = drives
	kb.drivesSource = drivesXLSX
	log.Printf("Imported %d placement drives from %s", len(drives), drivesXLSX)
	return kb
}

// DrivesSource names where the placement drive table came from.
func (kb *KnowledgeBase) DrivesSource() string {
	return kb.drivesSource
}

// JSON serializes the knowledge base for inclusion in provider prompts.
func (kb *KnowledgeBase) JSON() string {
	b, err := json.Marshal(kb)
	if err != nil {
		// Plain structs of strings and numbers always marshal.
		return "{}"
	}
	return string(b)
}

// ReadPlacementDrives reads the first sheet of an .xlsx workbook. The header
// row must name the columns company, date, cgpa, package and roles (any
// order, case-insensitive); roles are separated by ';' or ','.
func ReadPlacementDrives(path string) ([]PlacementDrive, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"company", "date", "cgpa", "package", "roles"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", required, rows[0])
		}
	}

	var drives []PlacementDrive
	for n, row := range rows[1:] {
		get := func(name string) string {
			idx := col[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := get("company")
		if name == "" {
			continue
		}
		cgpa, err := strconv.ParseFloat(get("cgpa"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid cgpa %q: %w", n+2, get("cgpa"), err)
		}

		drives = append(drives, PlacementDrive{
			Name:    name,
			Date:    get("date"),
			CGPA:    cgpa,
			Package: get("package"),
			Roles:   splitRoles(get("roles")),
		})
	}
	return drives, nil
}

func splitRoles(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}
